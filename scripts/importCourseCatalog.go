package main

import (
	"amc/config"
	"amc/database"
	"amc/models"
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("CourseCatalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	inserted := 0
	updated := 0
	skipped := 0

	for _, row := range records[1:] {
		course := models.Course{
			Name:            getField(row, headerIndex, "name"),
			FullName:        getField(row, headerIndex, "fullName"),
			Duration:        getField(row, headerIndex, "duration"),
			Fee:             parseInt(getField(row, headerIndex, "fee")),
			DiscountPercent: parseInt(getField(row, headerIndex, "discountPercent")),
			Category:        getField(row, headerIndex, "category"),
			IsPopular:       parseBool(getField(row, headerIndex, "popular")),
			IsDeleted:       false,
		}

		// Skip if no name or fee
		if course.Name == "" || course.Fee == 0 {
			skipped++
			continue
		}

		// Check if the course exists by short name
		var existing models.Course
		result := database.Database.Db.Where("name = ?", course.Name).First(&existing)

		if result.Error != nil {
			// Insert new course
			if err := database.Database.Db.Create(&course).Error; err != nil {
				log.Printf("Error inserting course %s: %v", course.Name, err)
				continue
			}
			inserted++
		} else {
			// Update existing course
			existing.FullName = course.FullName
			existing.Duration = course.Duration
			existing.Fee = course.Fee
			existing.DiscountPercent = course.DiscountPercent
			existing.Category = course.Category
			existing.IsPopular = course.IsPopular

			if err := database.Database.Db.Save(&existing).Error; err != nil {
				log.Printf("Error updating course %s: %v", course.Name, err)
				continue
			}
			updated++
		}
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Inserted: %d", inserted)
	log.Printf("Updated: %d", updated)
	log.Printf("Skipped: %d", skipped)
	log.Printf("Total processed: %d", inserted+updated+skipped)
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
