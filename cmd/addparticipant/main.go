// cmd/addparticipant/main.go
// Creates or updates a participant login in the database.
//
// Usage:
//
//	go run ./cmd/addparticipant -id p07 -name "Camille" -password testing [-admin]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/padraicbc/canape/config"
	bundb "github.com/padraicbc/canape/db"
	"github.com/padraicbc/canape/handlers"
	"github.com/padraicbc/canape/models"
)

func main() {
	id := flag.String("id", "", "participant id (required)")
	name := flag.String("name", "", "display name (defaults to the id)")
	password := flag.String("password", "", "plain-text password (required)")
	admin := flag.Bool("admin", false, "allow recording results")
	flag.Parse()

	hash, err := handlers.HashPassword(*id, *password)
	if err != nil {
		log.Fatal("both -id and -password are required: ", err)
	}
	if *name == "" {
		*name = *id
	}

	cfg := config.LoadCLI()
	db := bundb.Setup(cfg)
	defer db.Close()

	ctx := context.Background()
	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables: ", err)
	}

	p := &models.Participant{
		ID:       *id,
		Name:     *name,
		Password: hash,
		Admin:    *admin,
	}

	_, err = db.NewInsert().Model(p).
		On("CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, password = EXCLUDED.password, admin = EXCLUDED.admin").
		Exec(ctx)
	if err != nil {
		log.Fatal("insert participant: ", err)
	}

	fmt.Printf("participant %q saved (admin=%v)\n", *id, *admin)
}
