// normsctl manages the normative-table configuration: it validates a
// YAML norms document, imports one into the norms database, or lists the
// scales the database currently defines.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/payam1698/aistudio-final/internal/config"
	"github.com/payam1698/aistudio-final/internal/db"
	"github.com/payam1698/aistudio-final/internal/norms"
)

func main() {
	var (
		check = flag.String("check", "", "validate a norms document and exit")
		imp   = flag.String("import", "", "import a norms document into the norms DB")
		list  = flag.Bool("list", false, "list the scales defined in the norms DB")
	)
	flag.Parse()

	cfg := config.FromEnv()

	switch {
	case *check != "":
		if _, err := norms.LoadFile(*check); err != nil {
			log.Fatalf("%s: %v", *check, err)
		}
		log.Printf("%s: ok", *check)

	case *imp != "":
		doc, err := norms.ReadDocument(*imp)
		if err != nil {
			log.Fatalf("%s: %v", *imp, err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		defer dbh.Close()
		if err := norms.SaveDoc(ctx, dbh, doc); err != nil {
			log.Fatalf("import failed: %v", err)
		}
		log.Printf("imported %d scales from %s", len(doc.Scales), *imp)

	case *list:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		defer dbh.Close()
		p, err := norms.LoadDB(ctx, dbh)
		if err != nil {
			log.Fatalf("load norms: %v", err)
		}
		for _, id := range p.ScaleIDs() {
			def, err := p.Definition(id)
			if err != nil {
				log.Fatalf("scale %s: %v", id, err)
			}
			kind := "clinical"
			if def.Disclosure {
				kind = "disclosure"
			}
			fmt.Printf("%-4s %-4s %-28s %s (%d items)\n", def.ID, def.Code, def.Name, kind, len(def.Items))
		}

	default:
		flag.Usage()
		os.Exit(2)
	}
}
