// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecOps Lab

package models

// AppBuildInfo carries immutable build-time metadata embedded into binaries.
//
// Fields are unexported so the values cannot change after construction;
// ldflags populate them through NewAppBuildInfo at startup.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: buildVersion,
		buildDate:    buildDate,
		buildCommit:  buildCommit,
	}
}

// BuildVersion returns the embedded version string.
func (i AppBuildInfo) BuildVersion() string { return i.buildVersion }

// BuildDate returns the embedded build date.
func (i AppBuildInfo) BuildDate() string { return i.buildDate }

// BuildCommit returns the embedded VCS commit.
func (i AppBuildInfo) BuildCommit() string { return i.buildCommit }