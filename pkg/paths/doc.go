// Package paths provides centralized path handling for tmplfs.
//
// It follows the XDG Base Directory specification for the shared package
// cache, the local packages root and the user configuration directory, and
// owns the layout of the per-template dependency subtree:
//
//	<template>/.dependencies/<namespace>/<name>/<version>/...
//
// Every user-wide directory can be overridden through an environment
// variable so tests and CI never touch the real home directory.
package paths
