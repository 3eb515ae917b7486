// Package copier implements the copy goal: pre-rasterized bitmaps kept in
// <root>/<bucket>/ trees are flattened and copied into
// <output>/drawable-<bucket>/.
//
// Each configured root is probed for the six bucket directories (ldpi,
// mdpi, hdpi, xhdpi, nodpi, tvdpi). A bucket directory that is absent is
// simply not processed; a root without any of them is reported and
// skipped. Destinations are overwritten.
package copier
