/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mikeb26/squashtd/drawsite"
)

// this program exists just to seed the http cache with draw result pages
// ahead of a tournament day

const fetchPause = 2 * time.Second

func main() {
	ctx := context.Background()

	urls := os.Args[1:]
	if len(urls) == 0 {
		var err error
		urls, err = readURLs(os.Stdin)
		if err != nil {
			log.Fatalf("cacheseed.main: %v", err)
		}
	}

	client := drawsite.NewClient(ctx)
	for i, url := range urls {
		if i > 0 {
			time.Sleep(fetchPause) // avoid pegging the results site
		}
		recs, err := client.FetchGames(ctx, url)
		if err != nil {
			// best effort
			log.Printf("cacheseed.main: %v", err)
			continue
		}

		fmt.Printf("seeded %v (%d games)\n", url, len(recs))
	}
}

// readURLs reads one url per line, skipping blanks and # comments.
func readURLs(f *os.File) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read urls: %w", err)
	}
	return urls, nil
}
