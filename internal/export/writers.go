package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), os.ModePerm)
}

// WriteCSV writes rows as a single CSV file with a header line.
func WriteCSV(path string, rows []ReportRow) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := []string{"order_id", "date", "tower", "apartment", "customer", "status", "pay_method", "item_count", "total"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.OrderID,
			r.Date,
			r.Tower,
			strconv.Itoa(int(r.Apartment)),
			r.Customer,
			r.Status,
			r.PayMethod,
			strconv.Itoa(int(r.ItemCount)),
			strconv.FormatFloat(r.Total, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteJSON writes rows as newline-delimited JSON.
func WriteJSON(path string, rows []ReportRow) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	return nil
}
