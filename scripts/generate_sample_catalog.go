package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"crunchy-cruise/internal/model"
)

// Writes sample catalogue seed files for local development. Load them with
// CATALOG_SEED_FILES=data/catalog/snacks.jsonl.gz,data/catalog/drinks.jsonl.gz
func main() {
	dataDir := "data/catalog"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	soldOut := false
	files := map[string][]model.ProductRequest{
		"snacks.jsonl.gz": {
			{Name: "Chin Chin", Description: "Crunchy fried dough bites", Price: "₦2,500"},
			{Name: "Puff Puff", Description: "Six sweet fried dough balls", Price: "₦1,500"},
			{Name: "Plantain Chips", Description: "Lightly salted ripe plantain", Price: "₦2,000"},
			{Name: "Meat Pie", Description: "Minced beef and potato", Price: "₦1,800"},
			{Name: "Coconut Candy", Description: "Seasonal", Price: "₦1,000", Available: &soldOut},
		},
		"drinks.jsonl.gz": {
			{Name: "Zobo", Description: "Chilled hibiscus drink, 50cl", Price: "₦1,000"},
			{Name: "Kunu", Description: "Millet drink, 50cl", Price: "₦1,200"},
		},
	}

	for filename, products := range files {
		filePath := filepath.Join(dataDir, filename)

		if err := createCatalogFile(filePath, products); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d products\n", filePath, len(products))
	}
}

func createCatalogFile(filePath string, products []model.ProductRequest) (err error) {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer func() {
		if closeErr := gzipWriter.Close(); err == nil {
			err = closeErr
		}
	}()

	fmt.Fprintln(gzipWriter, "# crunchy cruise sample catalogue")
	encoder := json.NewEncoder(gzipWriter)
	for _, p := range products {
		if err := encoder.Encode(p); err != nil {
			return fmt.Errorf("failed to write product %s: %w", p.Name, err)
		}
	}

	return nil
}
