package feed

import "strconv"

// Query carries the filters accepted across resources. Zero fields are
// omitted from the request.
type Query struct {
	ID      int64
	League  int64
	Season  int
	Team    int64
	Fixture int64
	Player  int64
	Code    string
	Page    int
}

func (q Query) Params() map[string]string {
	out := make(map[string]string, 4)
	setID := func(key string, v int64) {
		if v > 0 {
			out[key] = strconv.FormatInt(v, 10)
		}
	}
	setID("id", q.ID)
	setID("league", q.League)
	setID("team", q.Team)
	setID("fixture", q.Fixture)
	setID("player", q.Player)
	if q.Season > 0 {
		out["season"] = strconv.Itoa(q.Season)
	}
	if q.Page > 1 {
		out["page"] = strconv.Itoa(q.Page)
	}
	if q.Code != "" {
		out["code"] = q.Code
	}
	return out
}
