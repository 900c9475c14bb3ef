package main

import (
	"context"
	"fmt"
	"os"

	"news-explainer/bootstrap"
)

func main() {
	ctx := context.Background()

	if err := bootstrap.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "news-explainer: %v\n", err)
		os.Exit(1)
	}
}
