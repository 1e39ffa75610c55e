// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate or internal validation methods to
// restrict validation to a subset of fields (field-level scoping).
const (
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldName           = "name"
	FieldParentID       = "parent_id"
	FieldIDs            = "ids"
	FieldShareKind      = "kind"
	FieldRecipientEmail = "recipient_email"
	FieldMimeType       = "mime_type"
)

const minPasswordLength = 8

// CredentialsRequest is the shape shared by registration and login
// handlers: an email/password pair.
type CredentialsRequest struct {
	Email    string
	Password string
}

// NameRequest validates a file, folder, or display name alongside an
// optional parent folder ID and, for file uploads, a declared MIME type.
type NameRequest struct {
	Name     string
	ParentID *int64
	MimeType string
}

// IDsRequest validates a non-empty list of record identifiers, used by the
// bulk-delete endpoint.
type IDsRequest struct {
	IDs []int64
}

// ShareRequest validates the discriminated union of a share-creation
// request: kind selects which of the remaining fields matter.
type ShareRequest struct {
	Kind           string
	RecipientEmail string
}

// RequestValidator implements [Validator] for the transport-layer request
// shapes used by the HTTP handlers.
type RequestValidator struct{}

// NewRequestValidator constructs a RequestValidator.
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case CredentialsRequest:
		return v.validateCredentials(value, fields...)
	case *CredentialsRequest:
		return v.validateCredentials(*value, fields...)

	case NameRequest:
		return v.validateName(value, fields...)
	case *NameRequest:
		return v.validateName(*value, fields...)

	case IDsRequest:
		return v.validateIDs(value, fields...)
	case *IDsRequest:
		return v.validateIDs(*value, fields...)

	case ShareRequest:
		return v.validateShare(value, fields...)
	case *ShareRequest:
		return v.validateShare(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateCredentials(req CredentialsRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if req.Email == "" || !strings.Contains(req.Email, "@") {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if len(req.Password) < minPasswordLength {
				return ErrInvalidPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateName(req NameRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldParentID}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if err := validateNameValue(req.Name); err != nil {
				return err
			}
		case FieldParentID:
			if req.ParentID != nil && *req.ParentID <= 0 {
				return ErrInvalidParentID
			}
		case FieldMimeType:
			if req.MimeType != "" && !isAllowedMimeType(req.MimeType) {
				return ErrInvalidMimeType
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateIDs(req IDsRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIDs}
	}

	for _, f := range fields {
		switch f {
		case FieldIDs:
			if len(req.IDs) == 0 {
				return ErrEmptyIDs
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateShare(req ShareRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldShareKind}
	}

	for _, f := range fields {
		switch f {
		case FieldShareKind:
			if req.Kind != "private" && req.Kind != "public" {
				return ErrInvalidShareKind
			}
			if req.Kind == "private" && req.RecipientEmail == "" {
				return ErrInvalidRecipientEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
