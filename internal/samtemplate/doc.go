// SPDX-License-Identifier: MPL-2.0

// Package samtemplate reads an AWS SAM template and lists the serverless
// functions it declares.
//
// Templates are walked as yaml.v3 nodes rather than decoded into structs, so
// CloudFormation short-form intrinsics (!Ref, !Sub, !GetAtt) never trip the
// decoder.
package samtemplate
