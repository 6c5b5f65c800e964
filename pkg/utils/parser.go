package utils

import (
	"strconv"
	"strings"
)

// ParseRupiah converts a rupiah amount string to float64.
// Example: "Rp. 1.234.567,89" -> 1234567.89
func ParseRupiah(nilaiStr string) float64 {
	cleaned := strings.TrimSpace(nilaiStr)

	// Remove currency prefix
	cleaned = strings.TrimPrefix(cleaned, "Rp.")
	cleaned = strings.TrimPrefix(cleaned, "Rp")
	cleaned = strings.TrimSpace(cleaned)

	// Indonesian grouping: dots for thousands, comma for decimals
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	nilai, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}

	return nilai
}

// ParseTanggal normalizes the portal's date strings to YYYY-MM-DD.
// Example: "05/01/2023" -> "2023-01-05", "17 Agustus 2022" -> "2022-08-17"
func ParseTanggal(tanggalStr string) string {
	tanggalStr = strings.TrimSpace(tanggalStr)

	// Format DD/MM/YYYY or DD-MM-YYYY
	for _, sep := range []string{"/", "-"} {
		parts := strings.Split(tanggalStr, sep)
		if len(parts) == 3 && len(parts[2]) == 4 {
			return parts[2] + "-" + pad2(parts[1]) + "-" + pad2(parts[0])
		}
	}

	// Format DD <month name> YYYY with Indonesian month names
	bulan := map[string]string{
		"JANUARI": "01", "FEBRUARI": "02", "MARET": "03", "APRIL": "04",
		"MEI": "05", "JUNI": "06", "JULI": "07", "AGUSTUS": "08",
		"SEPTEMBER": "09", "OKTOBER": "10", "NOVEMBER": "11", "DESEMBER": "12",
	}

	parts := strings.Fields(strings.ToUpper(tanggalStr))
	if len(parts) == 3 && len(parts[2]) == 4 {
		if m, ok := bulan[parts[1]]; ok {
			return parts[2] + "-" + m + "-" + pad2(parts[0])
		}
	}

	return tanggalStr
}

// IsNumericValue reports whether a cell text is purely numeric once the
// grouping characters "." and "," are ignored.
// Example: "1.234.567" -> true, "Rp. 1.234" -> false
func IsNumericValue(text string) bool {
	cleaned := strings.ReplaceAll(text, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	if cleaned == "" {
		return false
	}

	for _, char := range cleaned {
		if char < '0' || char > '9' {
			return false
		}
	}

	return true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
