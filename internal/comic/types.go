package comic

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Comic mirrors the JSON body served for a single comic.
type Comic struct {
	Num        int    `json:"num"`
	Title      string `json:"title"`
	SafeTitle  string `json:"safe_title"`
	Img        string `json:"img"`
	Alt        string `json:"alt"`
	Transcript string `json:"transcript"`
	Link       string `json:"link"`
	News       string `json:"news"`
	Year       string `json:"year"`
	Month      string `json:"month"`
	Day        string `json:"day"`
}

// Validate reports the first required field the payload is missing.
func (c Comic) Validate() error {
	if c.Num < 1 {
		return fmt.Errorf("missing or invalid num %d", c.Num)
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("missing title")
	}
	if strings.TrimSpace(c.Img) == "" {
		return fmt.Errorf("missing img")
	}
	return nil
}

// Published returns the publication date when the API reports one.
func (c Comic) Published() time.Time {
	year, err := strconv.Atoi(strings.TrimSpace(c.Year))
	if err != nil {
		return time.Time{}
	}
	month, err := strconv.Atoi(strings.TrimSpace(c.Month))
	if err != nil || month < 1 || month > 12 {
		return time.Time{}
	}
	day, err := strconv.Atoi(strings.TrimSpace(c.Day))
	if err != nil || day < 1 || day > 31 {
		return time.Time{}
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
