package server

//go:generate swag init -g internal/server/server.go -o docs/swagger

// @title ThunderLaunch Scanner API
// @version 0.3
// @description Interactive documentation for the token security scanner API surface.
// @contact.name ThunderLaunch Maintainers
// @contact.url https://github.com/cryptoEnthu14/ThunderLaunch-sub000
// @BasePath /
