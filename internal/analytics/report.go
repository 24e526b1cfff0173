package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ErlanBelekov/grocery-api/internal/metrics"
)

const DefaultTopN = 5

type Report struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	TopItems    []TopItem    `json:"topItems"`
	Stores      []StoreShare `json:"stores"`
	Users       []UserStat   `json:"users"`
}

type source interface {
	TopItems(ctx context.Context, limit int) ([]TopItem, error)
	StoreDistribution(ctx context.Context) ([]StoreShare, error)
	UserStats(ctx context.Context) ([]UserStat, error)
}

type Reporter struct {
	src  source
	topN int
	now  func() time.Time
}

func NewReporter(src source, topN int) *Reporter {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Reporter{src: src, topN: topN, now: time.Now}
}

// Build runs all report queries. Each run is counted by outcome.
func (r *Reporter) Build(ctx context.Context) (*Report, error) {
	start := time.Now()
	rep, err := r.build(ctx)
	metrics.ReportDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ReportRunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ReportRunsTotal.WithLabelValues("success").Inc()
	return rep, nil
}

func (r *Reporter) build(ctx context.Context) (*Report, error) {
	top, err := r.src.TopItems(ctx, r.topN)
	if err != nil {
		return nil, err
	}
	stores, err := r.src.StoreDistribution(ctx)
	if err != nil {
		return nil, err
	}
	users, err := r.src.UserStats(ctx)
	if err != nil {
		return nil, err
	}
	return &Report{
		GeneratedAt: r.now().UTC(),
		TopItems:    nonNil(top),
		Stores:      nonNil(stores),
		Users:       nonNil(users),
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func WriteJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func WriteText(w io.Writer, rep *Report) error {
	rule := strings.Repeat("=", 60)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, rule)
	fmt.Fprintln(tw, "GROCERY ITEM ANALYSIS REPORT")
	fmt.Fprintln(tw, rule)
	fmt.Fprintf(tw, "Generated at: %s\n", rep.GeneratedAt.Format(time.DateTime))

	fmt.Fprintf(tw, "\nTOP %d MOST FREQUENT ITEMS\n", len(rep.TopItems))
	if len(rep.TopItems) == 0 {
		fmt.Fprintln(tw, "  No item data available")
	} else {
		fmt.Fprintln(tw, "#\tItem\tCount\tUsers\tAvg Qty\t")
		for i, t := range rep.TopItems {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%.1f\t\n", i+1, t.Name, t.Frequency, t.UniqueUsers, t.AvgQuantity)
		}
	}

	fmt.Fprintln(tw, "\nSTORE DISTRIBUTION")
	if len(rep.Stores) == 0 {
		fmt.Fprintln(tw, "  No store data available")
	} else {
		fmt.Fprintln(tw, "Store\tItems\tUnique\tCustomers\t")
		for _, s := range rep.Stores {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t\n", s.Store, s.ItemCount, s.UniqueItems, s.Customers)
		}
	}

	fmt.Fprintln(tw, "\nTOP SHOPPERS")
	if len(rep.Users) == 0 {
		fmt.Fprintln(tw, "  No user data available")
	} else {
		fmt.Fprintln(tw, "Email\tItems\tUnique\tStores\t")
		for _, u := range rep.Users {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t\n", u.Email, u.TotalItems, u.UniqueItems, u.StoresVisited)
		}
	}
	fmt.Fprintln(tw, rule)

	return tw.Flush()
}
