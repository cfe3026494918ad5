// Package digits implements the fixed-radix digit vector that backs every
// big integer in bigcalc. Values are stored in base 100000, five decimal
// digits per slot, least-significant slot first.
package digits
