package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
)

const (
	maxPrice          = 1000000.0
	minTitleLen       = 5
	maxTitleLen       = 100
	maxDescriptionLen = 2000
)

func ValidateEmail(email string) error {
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username must be 3-20 characters, letters, numbers and underscore only")
	}
	return nil
}

func ValidatePrice(price float64) error {
	if price <= 0 {
		return fmt.Errorf("price must be greater than zero")
	}
	if price > maxPrice {
		return fmt.Errorf("price must not exceed %.0f", maxPrice)
	}
	return nil
}

func ValidateTitle(title string) error {
	n := len(strings.TrimSpace(title))
	if n < minTitleLen || n > maxTitleLen {
		return fmt.Errorf("title must be between %d and %d characters", minTitleLen, maxTitleLen)
	}
	return nil
}

func ValidateDescription(description string) error {
	if len(description) > maxDescriptionLen {
		return fmt.Errorf("description must not exceed %d characters", maxDescriptionLen)
	}
	return nil
}

// gameRequiredFields maps a game key to the listing fields a seller must fill
// in, in the order the errors should be reported.
var gameRequiredFields = map[string][]struct {
	key   string
	label string
}{
	"fifa": {
		{"platform", "Platform is required"},
		{"region", "Region is required"},
		{"level", "Account level is required"},
		{"coins", "Coin balance is required"},
		{"teamRating", "Team rating is required"},
	},
	"clash_of_clans": {
		{"townHallLevel", "Town hall level is required"},
		{"trophies", "Trophy count is required"},
		{"heroLevels", "Hero levels are required"},
	},
	"pubg": {
		{"tier", "Tier is required"},
		{"level", "Account level is required"},
		{"skins", "Skin count is required"},
	},
}

// GameAccountResult reports per-game listing validation.
type GameAccountResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// ValidateGameAccount checks the listing fields required for the given game.
// Unknown games have no extra required fields.
func ValidateGameAccount(game string, fields map[string]string) GameAccountResult {
	required, ok := gameRequiredFields[strings.ToLower(game)]
	if !ok {
		return GameAccountResult{IsValid: true}
	}

	var errs []string
	for _, f := range required {
		if strings.TrimSpace(fields[f.key]) == "" {
			errs = append(errs, f.label)
		}
	}
	return GameAccountResult{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateAccountCredentials checks the fields a seller must provide when
// delivering a sold account. Returned errors are in display order.
func ValidateAccountCredentials(username, password, email string) []string {
	var errs []string
	if strings.TrimSpace(username) == "" {
		errs = append(errs, "Account username is required")
	}
	if strings.TrimSpace(password) == "" {
		errs = append(errs, "Account password is required")
	}
	if strings.TrimSpace(email) == "" {
		errs = append(errs, "Account email is required")
	}
	return errs
}
