package download

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/backend.go github.com/kasuboski/rawz/pkg/download Backend,QBittorrentAPI
