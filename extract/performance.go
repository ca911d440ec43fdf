package extract

import "aeoaudit/model"

// Performance passes through the timing signals already collected by the
// fetcher (§4.C "Performance"): HTTP mode carries only TTFB, rendered mode
// carries only page-load time measured as wall-clock time around the
// browser run. FCP, LCP and DOM-load are not collected by either mode and
// stay zero.
func Performance(perf model.Performance) model.Performance {
	return perf
}
