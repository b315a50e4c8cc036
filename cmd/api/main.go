package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数）
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
