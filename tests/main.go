// Command tests fills a development database with sample site content.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"sitecms/config"
	"sitecms/database"
	contentRepo "sitecms/database/repository/content"
	"sitecms/models"

	"go.mongodb.org/mongo-driver/bson"
)

var samples = map[models.Resource][]models.Document{
	models.ServiceResource: {
		{"title": "Deep cleaning", "description": "Whole-home deep clean", "price": "120"},
		{"title": "Window washing", "description": "Inside and out", "price": "60"},
	},
	models.BannerResource: {
		{"title": "Spring offer", "subtitle": "20% off all services"},
	},
	models.FAQResource: {
		{"question": "Do you bring your own supplies?", "answer": "Yes, all supplies are included."},
		{"question": "How do I book?", "answer": "Call us or use the contact form."},
	},
	models.GalleryResource: {
		{"title": "Kitchen before and after"},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.DatabaseName)

	for res, docs := range samples {
		// Clear existing documents.
		if _, err := db.Collection(res.Collection).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s: %v", res.Collection, err)
		}

		repo := contentRepo.NewMongoContentRepo(db, res.Collection)
		for _, doc := range docs {
			doc["createdAt"] = time.Now().UTC()
			if res.HasImage {
				doc["image"] = "https://placehold.co/600x400"
			}
			result, err := repo.Insert(ctx, doc)
			if err != nil {
				log.Fatalf("Failed to insert into %s: %v", res.Collection, err)
			}
			fmt.Printf("Inserted %s %v\n", res.Name, result.InsertedID)
		}
	}
}
