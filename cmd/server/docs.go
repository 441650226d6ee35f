package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           TradingVault Service API
// @version         0.1.0
// @description     Signal relay, payment webhooks, and checkout sessions.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
