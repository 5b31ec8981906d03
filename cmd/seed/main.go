package main

import (
	"os"

	"github.com/sandeepkv93/product-catalog-service/internal/tools/seed"
)

func main() {
	if err := seed.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
