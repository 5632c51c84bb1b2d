package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/milk9111/unstable/scores"
)

func main() {
	dbPath := flag.String("db", "unstable.db", "sqlite file written by the game")
	top := flag.Bool("top", false, "list the longest runs instead of the most recent")
	limit := flag.Int("n", 10, "number of runs to list")
	clearBest := flag.Bool("clear-best", false, "forget the stored best time and exit")
	flag.Parse()

	store, err := scores.OpenSQLite(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if *clearBest {
		if err := store.ClearBest(ctx); err != nil {
			log.Fatal(err)
		}
		fmt.Println("best time cleared")
		return
	}

	best, err := store.Best(ctx)
	if err != nil {
		log.Fatal(err)
	}

	var runs []scores.Run
	if *top {
		runs, err = store.Top(ctx, *limit)
	} else {
		runs, err = store.Recent(ctx, *limit)
	}
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("best: %.3fs\n", best)
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RECORDED\tDURATION\tKILLS\tSEED\tID")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%.3f\t%d\t%d\t%s\n",
			r.RecordedAt.Local().Format(time.DateTime), r.Duration, r.Kills, r.Seed, r.ID)
	}
	if err := tw.Flush(); err != nil {
		log.Fatal(err)
	}
}
