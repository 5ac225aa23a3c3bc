package main

import (
	"github.com/dcworkshops/event-scraper/internal/cli"
)

func main() {
	cli.Execute()
}
