// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/topic-vote/models"
)

const (
	msgFailure        = "Something went wrong, please try again later."
	msgCancelled      = "Input cancelled."
	msgNoTopics       = "Nobody has proposed any topics yet."
	msgNoTopicsOrEp   = "Nobody has proposed any topics yet, or the episode number is wrong."
	msgBanned         = "Sorry, you are blocked. Please contact an administrator."
	msgNotAdmin       = "This command is only available to administrators."
	msgAskTitle       = "Enter a title for the topic:"
	msgEmptyTitle     = "The title can't be empty. Enter a title for the topic:"
	msgAskBody        = "Now enter the topic text. Links are welcome:"
	msgEmptyBody      = "The text can't be empty. Enter the topic text:"
	msgAskConfirm     = "Does the topic look the way you expected?"
	msgProposed       = "Your topic has been accepted, thank you!"
	msgDuplicate      = "A topic with this title and text already exists. Try rephrasing it with /propose."
	msgDiscarded      = "Okay, the topic was discarded. Use /propose to start over."
	msgAskEpisode     = "Which episode are these topics for? Enter the episode number:"
	msgBadEpisode     = "Enter the episode number as digits only, for example 42:"
	msgArchiveDup     = "A topic with this title and text is already in the archive. Nothing was archived."
	msgArchiveAborted = "Archiving cancelled. Use /archive to start over."
	msgVoteIntro      = "Press a topic to vote for it, press it again to take the vote back. Topics marked ✅ have your vote."
	msgVoteAdded      = "Vote counted."
	msgVoteRemoved    = "Vote withdrawn."
	msgVoteGone       = "Voting for this topic is over or it was deleted. Try again:"
	msgVoteEmpty      = "There is nothing left to vote for."
	msgDeleteIntro    = "Press a topic to delete it. Deletion is permanent and drops its votes."
	msgDeleted        = "Topic deleted."
	msgDeleteGone     = "The topic was probably deleted already. Try again:"
	msgDeleteEmpty    = "No topics left."
	msgPage           = "Page %d of %d."
	msgStale          = "This list is out of date. Run the command again."
	msgExpired        = "This question has expired."
	msgUseButtons     = "Please answer with the buttons above, or /cancel."
	msgDone           = "Thanks!"
	msgUnsubscribed   = "You will no longer receive reminders. Use /start to subscribe again."
	msgReminder       = "Voting for the next episode's topics is open. Use /vote to pick your favourites, or /propose to suggest one."
)

const helpText = `I collect discussion topics for the show.

/propose - suggest a topic
/vote - vote for topics
/list - show current topics and their votes
/list <episode> - show topics archived for an episode
/cancel - abort the current input
/unsubscribe - stop weekly reminders`

const adminHelpText = `

Administrator commands:
/archive - archive all current topics under an episode number
/delete - delete topics`

var episodePattern = regexp.MustCompile(`^\d{1,6}$`)

// ReminderText is the weekly reminder sent to subscribers.
func ReminderText() string {
	return msgReminder
}

func validTitle(title string) bool {
	return utf8.RuneCountInString(title) <= models.MaxTitleLength
}

func titleTooLong(title string) string {
	return fmt.Sprintf("The title is %d characters long; the limit is %d. Enter a shorter title:",
		utf8.RuneCountInString(title), models.MaxTitleLength)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	`~`, `\~`,
	`|`, `\|`,
	`>`, `\>`,
)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}

// formatTopic renders one topic. votes < 0 leaves the count out.
func formatTopic(title, proposer, body string, votes int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**", escape(title))
	if proposer != "" {
		fmt.Fprintf(&b, " (from %s)", escape(proposer))
	}
	b.WriteString("\n")
	b.WriteString(escape(body))
	if votes >= 0 {
		fmt.Fprintf(&b, "\nVotes: %s", humanize.Comma(int64(votes)))
	}
	return b.String()
}

func renderCurrent(topics []models.RankedTopic) []string {
	messages := make([]string, 0, len(topics)+1)
	total := 0
	for _, t := range topics {
		messages = append(messages, formatTopic(t.Title, t.ProposerName, t.Body, t.Votes))
		total += t.Votes
	}
	messages = append(messages, fmt.Sprintf("%s, %s in total.",
		plural(len(topics), "topic"), plural(total, "vote")))
	return messages
}

func renderArchived(episode int, archived []models.ArchivedTopic, now time.Time) []string {
	messages := make([]string, 0, len(archived)+1)
	messages = append(messages, fmt.Sprintf("Episode %d, archived %s:",
		episode, humanize.RelTime(archived[0].ArchivedAt, now, "ago", "from now")))
	for _, a := range archived {
		messages = append(messages, formatTopic(a.Title, a.ProposerName, a.Body, a.VoteCount))
	}
	return messages
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}

// pageSize leaves one keyboard row for Prev, Next and Done.
const pageSize = 20

func pageCount(topics int) int {
	return max(1, (topics+pageSize-1)/pageSize)
}

// pageOf returns one page of topics in proposal order, so buttons keep their
// place while counts change.
func pageOf(topics []models.RankedTopic, page int) []models.RankedTopic {
	ordered := make([]models.RankedTopic, len(topics))
	copy(ordered, topics)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	start := min(page*pageSize, len(ordered))
	end := min(start+pageSize, len(ordered))
	return ordered[start:end]
}

// selectionButtons builds the keyboard for one page. voted may be nil.
func selectionButtons(topics []models.RankedTopic, voted map[int64]bool, page, pages int) []Button {
	buttons := make([]Button, 0, len(topics)+3)
	for _, t := range topics {
		label := t.Title
		if voted[t.ID] {
			label = "✅ " + label
		}
		buttons = append(buttons, Button{Label: label, Action: ActionSelect, TopicID: t.ID})
	}
	if page > 0 {
		buttons = append(buttons, Button{Label: "◀ Prev", Action: ActionPage, Page: page - 1})
	}
	if page < pages-1 {
		buttons = append(buttons, Button{Label: "Next ▶", Action: ActionPage, Page: page + 1})
	}
	return append(buttons, Button{Label: "Done", Action: ActionStop})
}

func confirmButtons() []Button {
	return []Button{
		{Label: "Yes", Action: ActionConfirmYes},
		{Label: "No", Action: ActionConfirmNo},
	}
}
