package config

import (
	"slices"
	"strings"

	perrors "github.com/jmgilman/go/errors"
)

// CurrentConfigVersion is the schema version written by new nodecli configs.
const CurrentConfigVersion = "1"

// SupportedConfigVersions lists every configVersion Load accepts.
var SupportedConfigVersions = []string{CurrentConfigVersion}

// IsSupportedConfigVersion reports whether v is in SupportedConfigVersions.
func IsSupportedConfigVersion(v string) bool {
	return slices.Contains(SupportedConfigVersions, v)
}

func SupportedConfigVersionsCSV() string {
	return strings.Join(SupportedConfigVersions, ", ")
}

// checkConfigVersion rejects versions this build cannot read.
func checkConfigVersion(v string) error {
	if IsSupportedConfigVersion(v) {
		return nil
	}
	return perrors.WithContext(
		perrors.Newf(perrors.CodeInvalidConfig,
			"unsupported configVersion: %q (supported: %s)", v, SupportedConfigVersionsCSV()),
		"configVersion", v)
}
