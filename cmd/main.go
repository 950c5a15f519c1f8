// cmd/main.go
package main

import (
	"github.com/AkashAman27/cuddly-nest-blog/app"
)

// @title           CuddlyNest Blog API
// @version         1.0
// @description     Content-management backend for the CuddlyNest travel blog.

// @contact.name   API Support
// @contact.email  support@cuddlynest.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
