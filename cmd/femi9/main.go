package main

import (
	"github.com/femi9outfit/storefront/pkg/root"

	_ "github.com/femi9outfit/storefront/pkg/console" // Register commands
)

func main() {
	root.Execute()
}
