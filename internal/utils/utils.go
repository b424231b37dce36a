package utils

import (
	"unicode/utf8"

	"github.com/nanashi-dev/nanashi/internal/errors"
)

func isLowerAlnum(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

type BoardFieldValidator struct{}

func (e *BoardFieldValidator) Slug(slug string) error {
	if slug == "" {
		return &errors.ErrorWithStatusCode{Message: "Slug is required", StatusCode: 400}
	}
	if utf8.RuneCountInString(slug) > 16 {
		return &errors.ErrorWithStatusCode{Message: "Slug is too long", StatusCode: 400}
	}
	if !isLowerAlnum(slug) {
		return &errors.ErrorWithStatusCode{Message: "Slug should contain only lowercase letters and digits", StatusCode: 400}
	}
	return nil
}

func (e *BoardFieldValidator) Title(title string) error {
	if title == "" {
		return &errors.ErrorWithStatusCode{Message: "Title is required", StatusCode: 400}
	}
	if utf8.RuneCountInString(title) > 64 {
		return &errors.ErrorWithStatusCode{Message: "Title is too long", StatusCode: 400}
	}
	return nil
}
