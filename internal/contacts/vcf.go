package contacts

import (
	"bufio"
	"io"
	"strings"

	"github.com/twidpay/intellisearch/internal/model"
)

// ParseVCF reads vCard 2.1/3.0 records and returns one contact per
// card. A card needs at least a formatted name; the first phone
// number wins when a card carries several.
func ParseVCF(r io.Reader) ([]model.Contact, error) {
	var (
		out     []model.Contact
		current model.Contact
		inCard  bool
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.EqualFold(line, "BEGIN:VCARD"):
			current = model.Contact{}
			inCard = true
		case strings.EqualFold(line, "END:VCARD"):
			if inCard && current.Name != "" {
				out = append(out, current)
			}
			inCard = false
		case !inCard:
		default:
			key, value, ok := splitProperty(line)
			if !ok {
				continue
			}
			switch key {
			case "FN":
				if current.Name == "" {
					current.Name = value
				}
			case "TEL":
				if current.Number == "" {
					current.Number = value
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// splitProperty splits "TEL;TYPE=CELL:+9198..." into ("TEL", "+9198...").
func splitProperty(line string) (string, string, bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	key := line[:idx]
	if semi := strings.Index(key, ";"); semi >= 0 {
		key = key[:semi]
	}
	value := strings.TrimSpace(line[idx+1:])
	if value == "" {
		return "", "", false
	}
	return strings.ToUpper(strings.TrimSpace(key)), value, true
}
