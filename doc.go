// Package sphharm derives and cross-validates published symbolic
// definitions of the associated Legendre functions and the real
// spherical harmonics built on them.
//
// Three definition variants are supported: Williams/Rafaely (explicit
// even/odd-order case split, factorial recurrence for negative
// orders), Zotter–Frank (a single Rodrigues formula with derivative
// order n+m), and AES69 (which omits the Condon–Shortley phase). Each
// variant is built symbolically, compiled to a numeric function, and
// compared against a trusted recurrence-based reference evaluator.
// The ACN index mapping ties the (n, m) pairs to the linear channel
// numbering used in ambisonics.
package sphharm
