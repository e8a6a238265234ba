package config

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kasuboski/rawz/config/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	t.Run("fail to read in config", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cu := mocks.NewMockConfigUnmarshaler(ctrl)

		wantErr := errors.New("expected testing error")
		cu.EXPECT().ConfigFileUsed().Times(1).Return("fake-config.yaml")
		cu.EXPECT().ReadInConfig().Times(1).Return(wantErr)
		c, err := New(cu)
		if err == nil {
			t.Errorf("TestNew() err = %v, want %v", err, wantErr)
		}

		wantConfig := Config{}
		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %v, want %v", c, wantConfig)
		}
	})

	t.Run("fail to unmarshal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cu := mocks.NewMockConfigUnmarshaler(ctrl)

		wantErr := errors.New("bad decode")
		cu.EXPECT().ConfigFileUsed().Return("")
		cu.EXPECT().Unmarshal(gomock.Any()).Return(wantErr)
		_, err := New(cu)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("success with file", func(t *testing.T) {
		cu := viper.New()
		cu.SetConfigFile("./testing/config.yaml")
		c, err := New(cu)
		require.NoError(t, err)

		wantConfig := Config{
			Indexer: Indexer{
				Scheme:      "https",
				Host:        "nyaa.si",
				MinInterval: 750 * time.Millisecond,
			},
			Backend: Backend{
				Implementation: "qbittorrent",
				Scheme:         "http",
				Host:           "localhost",
				Port:           8080,
				Username:       "admin",
				Password:       "adminadmin",
			},
			Subtitles: Subtitles{
				Scheme:      "https",
				Host:        "kitsunekko.net",
				CatalogPath: "/dirlist.php?dir=subtitles%2Fjapanese%2F",
			},
			Download: Download{
				Root:         "/data/anime",
				Cap:          3,
				PollInterval: 2 * time.Second,
				TaskTimeout:  time.Hour,
			},
			Catalog: Catalog{
				Tags: []string{"[Ohys-Raws]", "[Leopard-Raws]"},
			},
		}

		assert.Equal(t, wantConfig, c)
		assert.NoError(t, c.Validate())
	})

	t.Run("success without file", func(t *testing.T) {
		cu := viper.New()
		cu.SetConfigFile("")
		cu.SetDefault("indexer.scheme", "https")
		cu.SetDefault("backend.implementation", "transmission")
		c, err := New(cu)
		require.NoError(t, err)

		wantConfig := Config{
			Indexer: Indexer{
				Scheme: "https",
			},
			Backend: Backend{
				Implementation: "transmission",
			},
		}

		assert.Equal(t, wantConfig, c)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Backend: Backend{
				Implementation: "qbittorrent",
				Host:           "localhost",
			},
			Download: Download{
				Root:         "/data",
				Cap:          3,
				PollInterval: time.Second,
			},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("unknown backend", func(t *testing.T) {
		c := valid()
		c.Backend.Implementation = "deluge"
		assert.Error(t, c.Validate())
	})

	t.Run("zero cap", func(t *testing.T) {
		c := valid()
		c.Download.Cap = 0
		assert.Error(t, c.Validate())
	})

	t.Run("missing root", func(t *testing.T) {
		c := valid()
		c.Download.Root = ""
		assert.Error(t, c.Validate())
	})

	t.Run("zero poll interval", func(t *testing.T) {
		c := valid()
		c.Download.PollInterval = 0
		assert.Error(t, c.Validate())
	})

	t.Run("bad scheme", func(t *testing.T) {
		c := valid()
		c.Indexer.Scheme = "ftp"
		assert.Error(t, c.Validate())
	})
}
