// SPDX-License-Identifier: MPL-2.0

// Package awscheck runs preflight checks against AWS before a deployment.
//
// Credentials and region come from the default AWS SDK chain (environment,
// shared config, SSO, instance role). The checks are read-only.
package awscheck
