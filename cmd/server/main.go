package main

import "github.com/thereayou/chatrooms/internal/server"

func main() {
	srv := server.NewServer()
	srv.Run()
}
