package validators

import (
	"errors"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{name: "valid simple", username: "alice", wantErr: nil},
		{name: "valid with dash and underscore", username: "ops_admin-2", wantErr: nil},
		{name: "valid minimum length", username: "a_1", wantErr: nil},
		{name: "too short", username: "ab", wantErr: ErrUsernameTooShort},
		{name: "empty", username: "", wantErr: ErrUsernameTooShort},
		{name: "embedded space", username: "ali ce", wantErr: ErrUsernameWhitespace},
		{name: "tab character", username: "ali\tce", wantErr: ErrUsernameWhitespace},
		{name: "punctuation", username: "alice!", wantErr: ErrUsernameCharset},
		{name: "non-ascii letter", username: "алиса", wantErr: ErrUsernameCharset},
		{name: "at sign", username: "alice@ops", wantErr: ErrUsernameCharset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateUsername(%q) = %v, want %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "valid", password: "pass123", wantErr: nil},
		{name: "valid minimum length", password: "abc12x", wantErr: nil},
		{name: "too short", password: "a1", wantErr: ErrPasswordTooShort},
		{name: "empty", password: "", wantErr: ErrPasswordTooShort},
		{name: "no digit", password: "password", wantErr: ErrPasswordNoDigit},
		{name: "no letter", password: "1234567", wantErr: ErrPasswordNoLetter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, err, tt.wantErr)
			}
		})
	}
}
