package discord

import (
	"strconv"

	"flatbot/internal/core/domain"
	"flatbot/internal/core/domain/command"

	"github.com/bwmarrin/discordgo"
)

func convertInteraction(raw *discordgo.Interaction) *domain.Interaction {
	interaction := &domain.Interaction{
		ID:      raw.ID,
		Token:   raw.Token,
		GuildID: domain.EntityID(raw.GuildID),
	}

	if raw.Member != nil && raw.Member.User != nil {
		interaction.UserID = raw.Member.User.ID
		interaction.Username = raw.Member.User.Username
	} else if raw.User != nil {
		interaction.UserID = raw.User.ID
		interaction.Username = raw.User.Username
	}

	switch raw.Type {
	case discordgo.InteractionPing:
		interaction.Kind = domain.KindPing
	case discordgo.InteractionApplicationCommand:
		interaction.Kind = domain.KindCommand
		data := raw.ApplicationCommandData()
		interaction.Name = data.Name
		interaction.Options = convertOptions(data)
	case discordgo.InteractionApplicationCommandAutocomplete:
		interaction.Kind = domain.KindAutocomplete
		data := raw.ApplicationCommandData()
		interaction.Name = data.Name
		interaction.Options = convertOptions(data)
		for _, option := range data.Options {
			if option.Focused {
				interaction.Focused = option.Name
			}
		}
	case discordgo.InteractionMessageComponent:
		interaction.Kind = domain.KindComponent
		data := raw.MessageComponentData()
		interaction.CustomID = data.CustomID
		interaction.Name, _ = command.SplitCustomID(data.CustomID)
	default:
		interaction.Kind = domain.InteractionKind(raw.Type.String())
	}

	return interaction
}

func convertOptions(data discordgo.ApplicationCommandInteractionData) []domain.Option {
	options := make([]domain.Option, 0, len(data.Options))

	for _, option := range data.Options {
		converted := domain.Option{Name: option.Name}

		switch option.Type {
		case discordgo.ApplicationCommandOptionString:
			converted.Value, _ = option.Value.(string)
		case discordgo.ApplicationCommandOptionInteger:
			converted.Value = strconv.FormatInt(option.IntValue(), 10)
		case discordgo.ApplicationCommandOptionAttachment:
			id, _ := option.Value.(string)
			if data.Resolved != nil {
				if attachment, ok := data.Resolved.Attachments[id]; ok {
					converted.Value = attachment.URL
				}
			}
		default:
			converted.Value, _ = option.Value.(string)
		}

		options = append(options, converted)
	}

	return options
}

func convertDescriptor(descriptor domain.CommandDescriptor) *discordgo.ApplicationCommand {
	command := &discordgo.ApplicationCommand{
		Name:        descriptor.Name,
		Description: descriptor.Description,
	}

	for _, spec := range descriptor.Options {
		command.Options = append(command.Options, &discordgo.ApplicationCommandOption{
			Name:         spec.Name,
			Description:  spec.Description,
			Type:         convertOptionType(spec.Type),
			Required:     spec.Required,
			Autocomplete: spec.Autocomplete,
		})
	}

	return command
}

func convertOptionType(optionType domain.OptionType) discordgo.ApplicationCommandOptionType {
	switch optionType {
	case domain.OptionInteger:
		return discordgo.ApplicationCommandOptionInteger
	case domain.OptionAttachment:
		return discordgo.ApplicationCommandOptionAttachment
	default:
		return discordgo.ApplicationCommandOptionString
	}
}

func convertOutcome(interaction *domain.Interaction, outcome *domain.Outcome) *discordgo.InteractionResponse {
	switch outcome.Kind {
	case domain.OutcomeReply:
		data := &discordgo.InteractionResponseData{Content: outcome.Content}
		if outcome.Ephemeral {
			data.Flags = discordgo.MessageFlagsEphemeral
		}

		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: data,
		}
	case domain.OutcomeComplex:
		data := &discordgo.InteractionResponseData{Content: outcome.Content}
		if outcome.Ephemeral {
			data.Flags = discordgo.MessageFlagsEphemeral
		}
		if outcome.Embed != nil {
			data.Embeds = []*discordgo.MessageEmbed{convertEmbed(outcome.Embed)}
		}
		if len(outcome.Buttons) > 0 {
			data.Components = []discordgo.MessageComponent{convertButtons(outcome.Buttons)}
		}

		responseType := discordgo.InteractionResponseChannelMessageWithSource
		if outcome.UpdateOriginal && interaction.Kind == domain.KindComponent {
			responseType = discordgo.InteractionResponseUpdateMessage
		}

		return &discordgo.InteractionResponse{Type: responseType, Data: data}
	case domain.OutcomeAutocomplete:
		choices := make([]*discordgo.ApplicationCommandOptionChoice, len(outcome.Choices))
		for i, choice := range outcome.Choices {
			choices[i] = &discordgo.ApplicationCommandOptionChoice{Name: choice.Name, Value: choice.Value}
		}

		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionApplicationCommandAutocompleteResult,
			Data: &discordgo.InteractionResponseData{Choices: choices},
		}
	default:
		return nil
	}
}

func convertEmbed(embed *domain.Embed) *discordgo.MessageEmbed {
	converted := &discordgo.MessageEmbed{
		Title:       embed.Title,
		Description: embed.Description,
		Color:       embed.Color,
	}

	if embed.ImageURL != "" {
		converted.Image = &discordgo.MessageEmbedImage{URL: embed.ImageURL}
	}

	for _, field := range embed.Fields {
		converted.Fields = append(converted.Fields, &discordgo.MessageEmbedField{
			Name:   field.Name,
			Value:  field.Value,
			Inline: field.Inline,
		})
	}

	return converted
}

func convertButtons(buttons []domain.Button) discordgo.ActionsRow {
	row := discordgo.ActionsRow{}

	for _, button := range buttons {
		style := discordgo.SuccessButton
		if button.Style == domain.ButtonLink {
			style = discordgo.LinkButton
		}

		row.Components = append(row.Components, discordgo.Button{
			Label:    button.Label,
			Style:    style,
			CustomID: button.CustomID,
			URL:      button.URL,
		})
	}

	return row
}
