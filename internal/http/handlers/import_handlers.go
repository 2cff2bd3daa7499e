package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	mw "github.com/labforge/labstock/internal/http/middleware"
	"github.com/labforge/labstock/internal/models"
)

type csvRow struct {
	Name       string
	PartNumber string
	Quantity   int
	UnitPrice  float64
	Threshold  int
	CategoryID int
	Location   string
}

func parseCSV(file multipart.File) ([]csvRow, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "part_number", "category_id"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		rows = append(rows, csvRow{
			Name:       field(record, "name"),
			PartNumber: field(record, "part_number"),
			Quantity:   parseInt(field(record, "quantity")),
			UnitPrice:  parseFloat(field(record, "unit_price")),
			Threshold:  parseInt(field(record, "critical_low_threshold")),
			CategoryID: parseInt(field(record, "category_id")),
			Location:   field(record, "location_bin"),
		})
	}
	return rows, nil
}

func validateRow(r csvRow) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("missing name")
	}
	if strings.TrimSpace(r.PartNumber) == "" {
		return errors.New("missing part number")
	}
	if r.Quantity < 0 {
		return errors.New("invalid quantity")
	}
	if r.UnitPrice < 0 {
		return errors.New("invalid unit price")
	}
	if r.Threshold < 0 {
		return errors.New("invalid threshold")
	}
	if r.CategoryID <= 0 {
		return errors.New("missing category")
	}
	return nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

// ImportComponentsHandler godoc
// @Summary Import components via CSV
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file with name, part_number, quantity, unit_price, critical_low_threshold, category_id, location_bin columns"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportComponentsResult
// @Failure 400 {string} string "Invalid file"
// @Router /components/import [post]
func ImportComponentsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	actor, _ := mw.ActorFromContext(r)

	var imported int
	var errorsList []ValidationError

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		if err := validateRow(rec); err != nil {
			errorsList = append(errorsList, ValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}
		if _, err := categoryRepo.GetByID(rec.CategoryID); err != nil {
			errorsList = append(errorsList, ValidationError{Description: fmt.Sprintf("row %d: category %d not found", rowNum, rec.CategoryID)})
			continue
		}

		threshold := rec.Threshold
		if threshold == 0 {
			threshold = models.DefaultCriticalLowThreshold
		}

		existing, err := componentRepo.GetByPartNumber(rec.PartNumber)
		if err == nil && existing.ID != 0 {
			if mode == "skip" {
				errorsList = append(errorsList, ValidationError{Description: fmt.Sprintf("row %d: part number '%s' already exists", rowNum, rec.PartNumber)})
				continue
			}
			existing.Name = rec.Name
			existing.Quantity = rec.Quantity
			existing.UnitPrice = rec.UnitPrice
			existing.CriticalLowThreshold = threshold
			existing.CategoryID = rec.CategoryID
			existing.LocationBin = rec.Location
			existing.UpdatedAt = time.Now().UTC()
			if _, err := componentRepo.Update(existing); err != nil {
				errorsList = append(errorsList, ValidationError{Description: fmt.Sprintf("row %d: failed to update '%s'", rowNum, rec.PartNumber)})
				continue
			}
			imported++
			continue
		}

		now := time.Now().UTC()
		component := models.Component{
			Name:                 rec.Name,
			PartNumber:           rec.PartNumber,
			Quantity:             rec.Quantity,
			UnitPrice:            rec.UnitPrice,
			CriticalLowThreshold: threshold,
			CategoryID:           rec.CategoryID,
			LocationBin:          rec.Location,
			CreatedBy:            actor.ID,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if _, err := componentRepo.Create(component); err != nil {
			errorsList = append(errorsList, ValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}
		imported++
	}

	if errorsList == nil {
		errorsList = []ValidationError{}
	}
	if err := writeJSON(w, http.StatusOK, ImportComponentsResult{ImportedCount: imported, Errors: errorsList}); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}
