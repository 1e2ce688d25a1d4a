// Package dist assembles the two distributable archive formats: the wheel
// (binary distribution tagged py3-none-any) and the source distribution.
// Builders are idempotent for identical inputs: member order is sorted and
// timestamps are pinned to a fixed epoch.
package dist
