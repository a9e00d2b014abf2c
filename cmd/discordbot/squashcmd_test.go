/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func scoreInteraction(opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: string(SquashCmd),
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{
					Name:    string(SquashScoreCmd),
					Type:    discordgo.ApplicationCommandOptionSubCommand,
					Options: opts,
				},
			},
		},
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func boolOpt(name string, value bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionBoolean,
		Value: value,
	}
}

func TestSquashScoreCmdHandler(t *testing.T) {
	ctx := context.Background()

	resp := squashCmdHandler(ctx, scoreInteraction(
		stringOpt("scores", "11-6, 6-11, 11-8, 11-4 great match")))
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response data")
	}
	if resp.Type != discordgo.InteractionResponseChannelMessageWithSource {
		t.Errorf("Expected response type %v, got %v",
			discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	}
	for _, want := range []string{
		"**Scores**: 11-6 6-11 11-8 11-4",
		"**Winner**: A (3-1)",
		"**Rules**: best-of=5, par=11,15",
		"**Comment**: great match",
	} {
		if !strings.Contains(resp.Data.Content, want) {
			t.Errorf("Expected %q in response, got %q", want, resp.Data.Content)
		}
	}
	if resp.Data.Flags != discordgo.MessageFlagsEphemeral {
		t.Errorf("Expected an ephemeral response by default")
	}
}

func TestSquashScoreCmdHandlerOptions(t *testing.T) {
	ctx := context.Background()

	resp := squashScoreCmdHandler(ctx, scoreInteraction(
		stringOpt("scores", "15-13 15-3"),
		stringOpt("bestof", "3"),
		stringOpt("par", "15"),
		boolOpt("broadcast", true)))
	if !strings.Contains(resp.Data.Content, "**Winner**: A (2-0)") {
		t.Errorf("unexpected response %q", resp.Data.Content)
	}
	if resp.Data.Flags != 0 {
		t.Errorf("Expected broadcast response, got flags %v", resp.Data.Flags)
	}
}

func TestSquashScoreCmdHandlerInvalid(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		opts []*discordgo.ApplicationCommandInteractionDataOption
		want string
	}{
		{"no scores", nil, "Please provide the scores to check."},
		{"no par",
			[]*discordgo.ApplicationCommandInteractionDataOption{
				stringOpt("scores", "11-10 11-0 11-0")},
			"**Invalid** 11-10 11-0 11-0: 11-10 did not reach any PAR in 11,15 in set 1"},
		{"too few sets",
			[]*discordgo.ApplicationCommandInteractionDataOption{
				stringOpt("scores", "11-0 11-0"), boolOpt("broadcast", true)},
			"at least 3 sets must be played"},
		{"bad rules",
			[]*discordgo.ApplicationCommandInteractionDataOption{
				stringOpt("scores", "11-0 11-0 11-0"), stringOpt("bestof", "five")},
			"Invalid rules"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp := squashScoreCmdHandler(ctx, scoreInteraction(c.opts...))
			if !strings.Contains(resp.Data.Content, c.want) {
				t.Errorf("Expected %q in response, got %q", c.want,
					resp.Data.Content)
			}
			if resp.Data.Flags != discordgo.MessageFlagsEphemeral {
				t.Errorf("Expected failures to stay ephemeral")
			}
		})
	}
}

func TestSquashHelpIsDefault(t *testing.T) {
	inter := &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: string(SquashCmd),
		},
	}
	resp := squashCmdHandler(context.Background(), inter)
	if resp.Data.Content != helpText {
		t.Errorf("Expected help text, got %q", resp.Data.Content)
	}
}

func TestTruncateContent(t *testing.T) {
	long := strings.Repeat("é", 3000)
	got := []rune(truncateContent(long))
	if len(got) != 1988+3 {
		t.Errorf("truncated to %d runes", len(got))
	}
	if truncateContent("short") != "short" {
		t.Errorf("short content was modified")
	}
}

func TestServeInteraction(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantCode int
		wantType discordgo.InteractionResponseType
	}{
		{"ping", `{"type":1}`, http.StatusOK,
			discordgo.InteractionResponsePong},
		{"help", `{"type":2,"data":{"name":"squash","options":[{"name":"help","type":1}]}}`,
			http.StatusOK,
			discordgo.InteractionResponseChannelMessageWithSource},
		{"unknown command", `{"type":2,"data":{"name":"td"}}`, http.StatusOK,
			discordgo.InteractionResponseChannelMessageWithSource},
		{"garbage", `not json`, http.StatusBadRequest, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost,
				"/DiscordBot/Interaction", strings.NewReader(c.body))
			rec := httptest.NewRecorder()
			serveInteraction(context.Background(), rec, req)

			if rec.Code != c.wantCode {
				t.Fatalf("status = %d; want %d", rec.Code, c.wantCode)
			}
			if c.wantCode != http.StatusOK {
				return
			}
			var resp discordgo.InteractionResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("bad response body: %v", err)
			}
			if resp.Type != c.wantType {
				t.Errorf("response type = %v; want %v", resp.Type, c.wantType)
			}
		})
	}
}

func TestCmdHashIsStable(t *testing.T) {
	h1, err := cmdHash(squashCommand())
	if err != nil {
		t.Fatalf("cmdHash error: %v", err)
	}
	h2, _ := cmdHash(squashCommand())
	if h1 != h2 || len(h1) != 64 {
		t.Errorf("cmdHash = %q, %q", h1, h2)
	}
}
