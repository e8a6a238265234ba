package http

//go:generate go run go.uber.org/mock/mockgen -source http.go -destination mocks/http.go -package mocks
