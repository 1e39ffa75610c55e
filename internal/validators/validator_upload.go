// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"path/filepath"
	"strings"
	"unicode"
)

const maxNameLength = 255

// reservedNames blocks the Windows device names, case-insensitively, from
// being used as a file or folder name regardless of extension.
var reservedNames = map[string]bool{
	"con": true, "prn": true, "aux": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true, "com5": true,
	"com6": true, "com7": true, "com8": true, "com9": true,
	"lpt1": true, "lpt2": true, "lpt3": true, "lpt4": true, "lpt5": true,
	"lpt6": true, "lpt7": true, "lpt8": true, "lpt9": true,
}

// deniedExtensions blocks executable and script extensions from being
// stored, case-insensitively, independent of the declared MIME type.
var deniedExtensions = map[string]bool{
	".exe": true, ".bat": true, ".cmd": true, ".ps1": true, ".vbs": true,
	".vbe": true, ".jse": true, ".wsf": true, ".wsh": true, ".msc": true,
	".pif": true, ".scr": true, ".reg": true, ".dll": true, ".com": true,
	".msi": true, ".hta": true, ".cpl": true, ".inf": true, ".lnk": true,
}

// allowedMimePrefixes is an allow-list of broad MIME categories (images,
// documents, text, archives, audio/video, code, fonts) plus a generic
// binary fallback. A mime type is accepted if, lowercased and trimmed, it
// begins with one of these prefixes.
var allowedMimePrefixes = []string{
	"image/", "text/", "audio/", "video/", "font/",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument",
	"application/vnd.ms-excel",
	"application/vnd.ms-powerpoint",
	"application/vnd.oasis.opendocument",
	"application/rtf",
	"application/zip",
	"application/x-7z-compressed",
	"application/x-rar-compressed",
	"application/gzip",
	"application/x-tar",
	"application/json",
	"application/xml",
	"application/javascript",
	"application/x-yaml",
	"application/octet-stream",
}

// isAllowedMimeType reports whether mimeType falls under one of the
// broad categories this application accepts uploads for.
func isAllowedMimeType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	for _, prefix := range allowedMimePrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	return false
}

// validateNameValue applies the shared name-safety rules to a file, folder,
// or display name: non-empty, no path separators, no control characters, not
// a reserved device name, not "." or ".." or leading "..", within a sane
// length, and not carrying an executable/script extension.
func validateNameValue(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return ErrInvalidName
	}
	if len(name) > maxNameLength {
		return ErrInvalidName
	}
	if name == "." || name == ".." || strings.HasPrefix(name, "..") {
		return ErrInvalidName
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return ErrInvalidName
		}
	}

	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(strings.ToLower(name), ext)
	if reservedNames[base] {
		return ErrInvalidName
	}
	if deniedExtensions[ext] {
		return ErrInvalidName
	}

	return nil
}
