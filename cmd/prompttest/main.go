package main

// Extract a structured résumé from a local file:
//   go run ./cmd/prompttest -resume ./cv.pdf [-out ./out/resume.json] [-raw]

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-profile/internal/extract"
	"resume-profile/internal/llm"
	openai "resume-profile/internal/llm/openai"
	"resume-profile/internal/shared/config"
)

func main() {
	cfg := config.Load()

	resumePath := flag.String("resume", "", "Path to resume file (pdf or docx)")
	promptVersion := flag.String("prompt-version", llm.DefaultPromptVersion, "Prompt version")
	outPath := flag.String("out", "", "Path to write JSON output (optional)")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	textOnly := flag.Bool("text", false, "Print the extracted text and stop")
	raw := flag.Bool("raw", false, "Print the model output without schema validation")
	flag.Parse()

	if strings.TrimSpace(*resumePath) == "" {
		exitErr("resume path is required")
	}

	resumeBytes, err := os.ReadFile(*resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}
	fileName := filepath.Base(*resumePath)

	ctx := context.Background()
	resumeText, err := extract.ExtractTextFromBytes(ctx, resumeBytes, "", fileName)
	if err != nil {
		exitErr(fmt.Sprintf("extract resume text: %v", err))
	}
	if *textOnly {
		fmt.Println(resumeText)
		return
	}

	client, err := openai.NewClient(cfg.OpenAIAPIKey, *model)
	if err != nil {
		exitErr(err.Error())
	}

	var out []byte
	if *raw {
		out, err = client.ExtractResume(ctx, llm.ExtractInput{ResumeText: resumeText, PromptVersion: *promptVersion})
		if err != nil {
			exitErr(fmt.Sprintf("llm extract: %v", err))
		}
	} else {
		gen := llm.NewResumeGenerator(client)
		gen.PromptVersion = *promptVersion
		data, err := gen.GenerateResumeObject(ctx, resumeText)
		if err != nil {
			exitErr(fmt.Sprintf("generate resume: %v", err))
		}
		out, err = json.Marshal(data)
		if err != nil {
			exitErr(fmt.Sprintf("encode resume: %v", err))
		}
	}

	pretty, err := prettyJSON(out)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			exitErr(fmt.Sprintf("create output dir: %v", err))
		}
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}

	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	if len(pretty) == 0 || pretty[len(pretty)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
}

func prettyJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
