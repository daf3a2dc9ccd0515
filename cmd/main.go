package main

import (
	"github.com/orderstore/order-svc/internal/app"
	"github.com/orderstore/order-svc/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
