// internal/api/handler/query.go
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"finflow-ledger/internal/report"
	"finflow-ledger/internal/util"
)

// periodFromQuery reads month and year. Leaving either out selects all time.
func periodFromQuery(r *http.Request) (report.Period, error) {
	q := r.URL.Query()
	monthStr, yearStr := strings.TrimSpace(q.Get("month")), strings.TrimSpace(q.Get("year"))
	if monthStr == "" || yearStr == "" {
		return report.AllTime, nil
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return report.Period{}, util.InvalidInput("month")
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 {
		return report.Period{}, util.InvalidInput("year")
	}
	return report.Period{Month: month, Year: year}, nil
}

// walletIDsFromQuery accepts walletIds=a,b as well as repeated walletIds keys.
func walletIDsFromQuery(r *http.Request) []string {
	var ids []string
	for _, v := range r.URL.Query()["walletIds"] {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
