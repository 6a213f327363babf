package catalog

import "strings"

const (
	templateForgeFabric      = "forge-fabric"
	templateForgeFabricMixin = "forge-fabric-mixin"

	mixinSuffix        = "mixin"
	architecturyPrefix = "architectury"
	extensionLength    = len(".zip")
)

// ParseAssetName maps a release asset file name to the template and the
// Minecraft version it provides.
//
// Three naming schemes have been used over time:
//
//	mixin.zip, 1.15-mixin.zip                  forge-fabric(-mixin), no template segment
//	1.16-architectury.zip, 1.16-architectury-mixin.zip
//	1.19-forge-quilt.zip                       <version>-<template>.zip
//
// Every name maps to some template. Names without a dash have an empty version.
func ParseAssetName(name string) (template, version string) {
	dashPos := strings.IndexByte(name, '-')
	// a missing dash leaves the whole name (minus extension) as the stem
	stemStart := dashPos + 1
	if dashPos < 0 {
		dashPos = 0
	}
	version = name[:dashPos]
	hasDash := dashPos > 0

	stem := ""
	if stemEnd := len(name) - extensionLength; stemEnd > stemStart {
		stem = name[stemStart:stemEnd]
	}
	mixin := strings.HasSuffix(stem, mixinSuffix)

	switch {
	case stem == mixinSuffix:
		template = templateForgeFabricMixin
	case hasDash && strings.HasPrefix(stem, architecturyPrefix):
		if mixin {
			template = templateForgeFabricMixin
		} else {
			template = templateForgeFabric
		}
	case hasDash:
		template = stem
	default:
		template = templateForgeFabric
	}
	return template, version
}
