package domain

import "time"

// EntityID identifies one guild managed by the bot. Discord issues these and
// they are stable for the guild's lifetime.
type EntityID string

type InteractionKind string

const (
	KindPing         InteractionKind = "ping"
	KindCommand      InteractionKind = "command"
	KindComponent    InteractionKind = "component"
	KindAutocomplete InteractionKind = "autocomplete"
)

// Interaction is one inbound user request, already stripped of platform wire
// detail. Name is the slash command name, or the custom id prefix for
// component presses.
type Interaction struct {
	ID       string
	Token    string
	GuildID  EntityID
	Kind     InteractionKind
	Name     string
	CustomID string
	Options  []Option
	Focused  string
	UserID   string
	Username string
}

type Option struct {
	Name  string
	Value string
}

// OptionValue returns the value of the named option, or empty string.
func (i *Interaction) OptionValue(name string) string {
	for _, o := range i.Options {
		if o.Name == name {
			return o.Value
		}
	}

	return ""
}

type OptionType string

const (
	OptionString     OptionType = "string"
	OptionInteger    OptionType = "integer"
	OptionAttachment OptionType = "attachment"
)

// CommandDescriptor is the immutable metadata published to the platform for
// one slash command. Loaded into the registry once at startup.
type CommandDescriptor struct {
	Name        string
	Description string
	Options     []OptionSpec
}

type OptionSpec struct {
	Name         string
	Description  string
	Type         OptionType
	Required     bool
	Autocomplete bool
}

type OutcomeKind string

const (
	OutcomeNone         OutcomeKind = "none"
	OutcomeReply        OutcomeKind = "reply"
	OutcomeComplex      OutcomeKind = "complex"
	OutcomeAutocomplete OutcomeKind = "autocomplete"
)

// Outcome is the terminal result of handling one interaction. At most one
// correlated FollowUp may accompany it.
type Outcome struct {
	Kind           OutcomeKind
	Content        string
	Ephemeral      bool
	UpdateOriginal bool
	Embed          *Embed
	Buttons        []Button
	Choices        []Choice
	FollowUp       *Outcome
}

type Embed struct {
	Title       string
	Description string
	Color       int
	ImageURL    string
	Fields      []EmbedField
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

type ButtonStyle string

const (
	ButtonSuccess ButtonStyle = "success"
	ButtonLink    ButtonStyle = "link"
)

type Button struct {
	Label    string
	CustomID string
	URL      string
	Style    ButtonStyle
}

type Choice struct {
	Name  string
	Value string
}

// Message is a plain channel message, used by message reactors.
type Message struct {
	ID        string
	ChannelID string
	GuildID   EntityID
	Content   string
	AuthorID  string
}

// Bill is one shared expense split across the flat.
type Bill struct {
	ID         int64
	Token      string
	GuildID    EntityID
	Purpose    string
	ReceiptURL string
	CreatedBy  string
	CreatedAt  time.Time
	Shares     []Share
}

type Share struct {
	Name   string
	Amount int64
	Paid   bool
}

type Flatmate struct {
	DiscordID   string `mapstructure:"discord_id"`
	Name        string `mapstructure:"name"`
	DisplayName string `mapstructure:"display_name"`
}

// Roster is the configured flatmate list, immutable after load.
type Roster []Flatmate

func (r Roster) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}

	return names
}

func (r Roster) ByDiscordID(id string) (Flatmate, bool) {
	for _, f := range r {
		if f.DiscordID == id {
			return f, true
		}
	}

	return Flatmate{}, false
}

func (r Roster) DisplayName(name string) string {
	for _, f := range r {
		if f.Name == name {
			return f.DisplayName
		}
	}

	return name
}

// Listing is one rental property from the listing service.
type Listing struct {
	Title       string
	Address     string
	RentPerWeek int64
	URL         string
}

// Travel is one commute leg from an origin address to a configured
// destination.
type Travel struct {
	Destination string
	Duration    string
	Distance    string
}
