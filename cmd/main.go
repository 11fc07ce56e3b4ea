package main

import (
	"github.com/gebeta/delivery/internal/app"
	"github.com/gebeta/delivery/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
