/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	EnvBotToken  = "DISCORD_BOT_TOKEN"
	EnvPublicKey = "DISCORD_PUBLIC_KEY"
	EnvAppId     = "DISCORD_APP_ID"

	// set once the command is registered so later starts edit it in place
	EnvCmdId   = "DISCORD_CMD_ID"
	EnvCmdHash = "DISCORD_CMD_HASH"
)

type TopLevelCommand string

const (
	SquashCmd TopLevelCommand = "squash"
)

type CmdHandler func(ctx context.Context,
	i *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	SquashCmd: squashCmdHandler,
}

type bot struct {
	pubKey ed25519.PublicKey
	client *discordgo.Session
	appId  string
}

func newBot() (*bot, error) {
	pubKeyText := strings.TrimSpace(os.Getenv(EnvPublicKey))
	pubKeyBytes, err := hex.DecodeString(pubKeyText)
	if err != nil || len(pubKeyBytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%v is not a valid ed25519 public key: %v",
			EnvPublicKey, err)
	}

	token := strings.TrimSpace(os.Getenv(EnvBotToken))
	if token == "" {
		return nil, fmt.Errorf("%v is not set", EnvBotToken)
	}
	client, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize discord client: %w", err)
	}

	return &bot{
		pubKey: ed25519.PublicKey(pubKeyBytes),
		client: client,
		appId:  strings.TrimSpace(os.Getenv(EnvAppId)),
	}, nil
}

func (b *bot) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, b.pubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	serveInteraction(r.Context(), w, r)
}

// serveInteraction handles an already verified interaction request.
func serveInteraction(ctx context.Context, w http.ResponseWriter,
	r *http.Request) {

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, string(body))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		name := inter.ApplicationCommandData().Name
		hdlr, ok := topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'", name),
				Flags:   discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(ctx, &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interation type %v",
			inter.Type)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(rawResp); err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

func cmdHash(cmd *discordgo.ApplicationCommand) (string, error) {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(cmdJson)
	return hex.EncodeToString(hash[:]), nil
}

func (b *bot) registerSlashCommands() {
	cmd := squashCommand()
	cmdId := strings.TrimSpace(os.Getenv(EnvCmdId))

	if cmdId == "" {
		created, err := b.client.ApplicationCommandCreate(b.appId, "", cmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", cmd.Name,
				err)
			return
		}
		log.Printf("discordbot.reg: registered %v(cmdID:%v); please set %v",
			created.Name, created.ID, EnvCmdId)
		return
	}

	hash, err := cmdHash(cmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to marshal cmd: %v", err)
		return
	}
	if hash == strings.TrimSpace(os.Getenv(EnvCmdHash)) {
		return
	}
	edited, err := b.client.ApplicationCommandEdit(b.appId, "", cmdId, cmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to update %v: %v", cmd.Name, err)
		return
	}
	log.Printf("discordbot.reg: updated %v(cmdID:%v); please set %v to %v",
		edited.Name, edited.ID, EnvCmdHash, hash)
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	b, err := newBot()
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}
	go b.registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v:8080", hostname)

	http.HandleFunc("/DiscordBot/Interaction", b.interactionHandler)
	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
