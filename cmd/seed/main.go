// Command seed loads starter catalog data into the configured database. With
// -hash it only prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"pestcontrol/config"
	"pestcontrol/database"
	catalogTypeRepo "pestcontrol/database/repository/catalogtype"
	seoRepo "pestcontrol/database/repository/seo"
	serviceRepo "pestcontrol/database/repository/service"
	"pestcontrol/models"
	"pestcontrol/services/catalog"
	"pestcontrol/services/seo"
	"pestcontrol/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	serviceTypeNames = []string{"Termite Control", "Rodent Control", "Bed Bug Treatment", "Mosquito Control", "General Pest Control"}
	areaTypeNames    = []string{"Residential", "Commercial", "Industrial", "Agricultural"}
)

func sampleServices() []models.ServiceInput {
	price := func(v float64) *float64 { return &v }
	return []models.ServiceInput{
		{
			ServiceName: "Termite Inspection & Treatment", ServiceType: "Termite Control",
			ShortDescription: "Full-property termite inspection with targeted treatment.",
			Description:      "Our technicians inspect foundations, wood and soil, then apply a barrier treatment with a twelve month warranty.",
			BasePrice:        price(150), Image: "https://res.cloudinary.com/demo/image/upload/pest-control/images/termite.jpg",
			ServiceAreaTypes: []string{"Residential", "Commercial"}, Pests: []string{"termites"},
			Inclusions: []string{"Inspection report", "Barrier treatment", "Follow-up visit"},
			Slug:       "termite-treatment", Featured: true,
		},
		{
			ServiceName: "Rodent Exclusion", ServiceType: "Rodent Control",
			Description: "Trapping, baiting and sealing of entry points for rats and mice.",
			BasePrice:   price(120), Image: "https://res.cloudinary.com/demo/image/upload/pest-control/images/rodent.jpg",
			ServiceAreaTypes: []string{"Residential", "Commercial", "Industrial"}, Pests: []string{"rats", "mice"},
			Slug: "rodent-exclusion", Featured: true,
		},
		{
			ServiceName: "Bed Bug Heat Treatment", ServiceType: "Bed Bug Treatment",
			Description: "Whole-room heat treatment that eliminates bed bugs at every life stage.",
			Image:       "https://res.cloudinary.com/demo/image/upload/pest-control/images/bedbug.jpg",
			Pests:       []string{"bed bugs"}, Slug: "bed-bug-heat-treatment",
		},
	}
}

func main() {
	hash := flag.String("hash", "", "print a bcrypt hash of this password and exit")
	flag.Parse()

	if *hash != "" {
		out, err := bcrypt.GenerateFromPassword([]byte(*hash), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	config.LoadConfig()
	database.InitDB()
	defer database.Disconnect(context.Background())
	db := database.DB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	types := map[string]*catalog.DefaultTypeService{
		"service type": catalog.NewDefaultTypeService("service type", catalogTypeRepo.NewMongoCatalogTypeRepo(db, catalogTypeRepo.ServiceTypesCollection), nil),
		"area type":    catalog.NewDefaultTypeService("area type", catalogTypeRepo.NewMongoCatalogTypeRepo(db, catalogTypeRepo.AreaTypesCollection), nil),
	}
	names := map[string][]string{"service type": serviceTypeNames, "area type": areaTypeNames}
	for label, svc := range types {
		for _, name := range names[label] {
			if _, err := svc.Create(ctx, name); err != nil {
				if utils.KindOf(err) == utils.KindConflict {
					continue
				}
				log.Fatalf("Failed to seed %s %q: %v", label, name, err)
			}
			log.Printf("Seeded %s %q", label, name)
		}
	}

	cat := catalog.NewDefaultServiceCatalog(serviceRepo.NewMongoServiceRepo(db), serviceRepo.NewMongoFeaturedSlots(db))
	if err := cat.ReconcileFeatured(ctx); err != nil {
		log.Fatalf("Failed to reconcile featured counter: %v", err)
	}
	for _, in := range sampleServices() {
		if _, err := cat.CreateService(ctx, in); err != nil {
			log.Printf("Skipped service %q: %v", in.Slug, err)
			continue
		}
		log.Printf("Seeded service %q", in.Slug)
	}

	pages, err := seo.NewDefaultSEOService(seoRepo.NewMongoSEORepo(db)).List(ctx)
	if err != nil {
		log.Fatalf("Failed to seed seo pages: %v", err)
	}
	log.Printf("SEO pages ready: %d", len(pages))
}
