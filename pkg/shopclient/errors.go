package shopclient

import "errors"

// ErrSearchFailed is the hard failure of the product search. Callers abort
// the render and clear any selection; there is no partial result.
var ErrSearchFailed = errors.New("product search failed")
