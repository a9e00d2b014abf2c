/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/squashtd/results"
	"github.com/mikeb26/squashtd/scores"
)

type SquashSubCommand string

const (
	SquashAboutCmd SquashSubCommand = "about"
	SquashHelpCmd  SquashSubCommand = "help"
	SquashScoreCmd SquashSubCommand = "score"
)

var squashSubCmdHdlrs = map[SquashSubCommand]CmdHandler{
	SquashAboutCmd: squashAboutCmdHandler,
	SquashHelpCmd:  squashHelpCmdHandler,
	SquashScoreCmd: squashScoreCmdHandler,
}

func squashCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        string(SquashCmd),
		Description: "Squash score checks; try /squash help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SquashHelpCmd),
				Description: "Show usage for squash",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SquashAboutCmd),
				Description: "Show information about squashtd",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SquashScoreCmd),
				Description: "Check a match score",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "scores",
						Description: "Set scores, e.g. 11-6 6-11 11-8 11-4",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "bestof",
						Description: "Allowed best-of counts (default is 5)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "par",
						Description: "Allowed PAR values (default is 11,15)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "broadcast",
						Description: "Share with the rest of the channel instead of only to you (default is false)",
						Required:    false,
					},
				},
			},
		},
	}
}

func squashCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := squashHelpCmdHandler
	if len(data.Options) > 0 {
		if h, ok := squashSubCmdHdlrs[SquashSubCommand(data.Options[0].Name)]; ok {
			hdlr = h
		}
	}
	return hdlr(ctx, inter)
}

func newEphemeralResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

//go:embed about.txt
var aboutText string

func squashAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(aboutText)
	return resp
}

//go:embed help.md
var helpText string

func squashHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

func squashScoreCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()

	data := inter.ApplicationCommandData()
	var text, bestOf, par string
	broadcast := false // default
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			switch opt.Name {
			case "scores":
				text = opt.StringValue()
			case "bestof":
				bestOf = opt.StringValue()
			case "par":
				par = opt.StringValue()
			case "broadcast":
				broadcast = opt.BoolValue()
			}
		}
	}
	if strings.TrimSpace(text) == "" {
		resp.Data.Content = "Please provide the scores to check."
		log.Printf("discordbot.score: %v", resp.Data.Content)
		return resp
	}

	rules, err := scores.ParseRules(bestOf, par)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Invalid rules: %v", err)
		log.Printf("discordbot.score: %v", resp.Data.Content)
		return resp
	}

	s, remainder, err := results.CheckScores(text, rules)
	if err != nil {
		var ie *scores.IncompleteError
		if errors.As(err, &ie) {
			resp.Data.Content = fmt.Sprintf("**Invalid** %v: %v", text, ie.Reason)
		} else {
			resp.Data.Content = fmt.Sprintf("**Invalid** %v: %v", text, err)
		}
		// validation failures stay private even when broadcast is requested
		return resp
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**Scores**: %v\n", s))
	sb.WriteString(fmt.Sprintf("**Winner**: %v (%v)\n", s.Winner(),
		s.TallyString()))
	sb.WriteString(fmt.Sprintf("**Rules**: %v\n", s.Rules()))
	if remainder != "" {
		sb.WriteString(fmt.Sprintf("**Comment**: %v\n", remainder))
	}
	resp.Data.Content = truncateContent(sb.String())

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
