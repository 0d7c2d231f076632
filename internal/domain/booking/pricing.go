package booking

// CabinPrice returns the charge for the stay itself: the cabin's nightly
// rate minus its discount, multiplied by the number of nights. The price
// is computed once at creation and frozen; later changes to the cabin's
// rate never reprice an existing booking.
//
// A discount larger than the rate yields a negative price. That is not
// guarded here; callers validate cabin data upstream if it must never
// occur.
func CabinPrice(regularPrice, discount float64, numNights int) float64 {
	return (regularPrice - discount) * float64(numNights)
}

// TotalPrice returns the full charge for a booking: the cabin price plus
// the caller-supplied extras (breakfast and other add-ons).
func TotalPrice(regularPrice, discount float64, numNights int, extrasPrice float64) float64 {
	return CabinPrice(regularPrice, discount, numNights) + extrasPrice
}
