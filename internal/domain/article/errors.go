package article

import "errors"

// ErrFetch indicates the article could not be retrieved (bad URL, network).
var ErrFetch = errors.New("article fetch failed")

// ErrParse indicates the page was retrieved but no article could be read from it.
var ErrParse = errors.New("article parse failed")
