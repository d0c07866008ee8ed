package research

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/outpost-labs/scout/internal/engine"
	"github.com/outpost-labs/scout/pkg/storage"
)

// Podcast speaker names. The TTS voice configuration matches on these,
// so the script prompt and the speech config must agree.
const (
	hostName   = "Mike"
	expertName = "Dr. Sarah"
)

// PodcastStep turns the run's research into a two-host conversation,
// renders it to speech, and publishes the audio as a WAV artifact. A
// publish failure keeps the script and drops only the download URL.
func PodcastStep(rt *Runtime) engine.StepFunc {
	return func(ctx context.Context, st *engine.RunState) (*engine.Update, error) {
		script, err := rt.generateScript(ctx, st)
		if err != nil {
			return nil, fmt.Errorf("podcast script: %w", err)
		}

		audio, err := rt.synthesizeSpeech(ctx, script)
		if err != nil {
			return nil, fmt.Errorf("podcast audio: %w", err)
		}

		update := &engine.Update{PodcastScript: &script}

		wav := encodeWAV(audio, rt.Config.AudioChannels, rt.Config.AudioRate, rt.Config.AudioDepth)
		key := podcastKey(st.Input.Topic, st.Input.CompanyName)
		url, err := rt.publish(ctx, key, wav, "audio/wav")
		switch {
		case err == nil:
			update.PodcastURL = &url
		case errors.Is(err, storage.ErrNotConfigured):
			rt.Logger.InfoContext(ctx, "storage not configured, returning script only")
		default:
			rt.Logger.WarnContext(ctx, "podcast publish failed, returning script only", "error", err)
		}

		rt.Logger.InfoContext(ctx, "podcast generation complete",
			"topic", st.Input.Topic,
			"audio_bytes", len(wav),
			"published", update.PodcastURL != nil,
		)

		return update, nil
	}
}

func (rt *Runtime) generateScript(ctx context.Context, st *engine.RunState) (string, error) {
	prompt := scriptPrompt(st.Input.Topic, st.Input.CompanyName, podcastMaterial(st))

	temp := rt.Config.ScriptTemperature
	resp, err := rt.Client.generate(ctx, rt.Config.SynthesisModel, textContent(prompt), &genai.GenerateContentConfig{
		Temperature: &temp,
	})
	if err != nil {
		return "", err
	}

	script := responseText(resp)
	if script == "" {
		return "", ErrEmptyResponse
	}
	return script, nil
}

func (rt *Runtime) synthesizeSpeech(ctx context.Context, script string) ([]byte, error) {
	prompt := fmt.Sprintf("TTS the following conversation between %s and %s:\n%s", hostName, expertName, script)

	resp, err := rt.Client.generate(ctx, rt.Config.TTSModel, textContent(prompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			MultiSpeakerVoiceConfig: &genai.MultiSpeakerVoiceConfig{
				SpeakerVoiceConfigs: []*genai.SpeakerVoiceConfig{
					{
						Speaker: hostName,
						VoiceConfig: &genai.VoiceConfig{
							PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: rt.Config.MikeVoice},
						},
					},
					{
						Speaker: expertName,
						VoiceConfig: &genai.VoiceConfig{
							PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: rt.Config.SarahVoice},
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	audio := firstAudio(resp)
	if audio == nil {
		return nil, ErrNoAudio
	}
	return audio, nil
}

// podcastMaterial picks the text the conversation is grounded on. Company
// runs talk about the company research, topic runs about the search
// results, and either falls back to the synthesized report.
func podcastMaterial(st *engine.RunState) string {
	if st.Input.Approach == engine.ApproachCompanyLeads && st.CompanyResearch != "" {
		return st.CompanyResearch
	}
	if st.SearchText != "" {
		return st.SearchText
	}
	return st.Report
}

func scriptPrompt(topic, company, material string) string {
	prompt := fmt.Sprintf(`Create a natural, engaging podcast conversation between %s (a research
expert) and %s (a curious interviewer) about the topic: %s
`, expertName, hostName, topic)

	if company != "" {
		prompt += fmt.Sprintf("\nFocus the discussion on what the research means for %s.\n", company)
	}

	prompt += fmt.Sprintf(`
Base the conversation on this research:

%s

Format every line as the speaker name, a colon, and the dialogue, for
example "%s: ...". Use only the speakers %s and %s. Write 5-7 exchanges
per speaker, enough for roughly 3 to 4 minutes of audio. No stage
directions, no markdown.`, material, hostName, hostName, expertName)

	return prompt
}
