package main

import (
	"flag"

	"github.com/ckoohin/tourify/db"
)

func main() {
	seed := flag.Bool("seed", false, "seed baseline roles, permissions and the admin user after migrating")
	flag.Parse()

	db.Migrate()
	if *seed {
		db.Seed()
	}
}
