package pipeline

import (
	"fmt"
	"strings"
)

const systemPrompt = `당신은 사내 규정 문서를 기반으로 답변하는 어시스턴트입니다.

규칙:
1. 반드시 제공된 문서 내용만을 근거로 답변하세요.
2. 문서에 없는 내용은 추측하지 말고 "문서에서 해당 내용을 찾을 수 없습니다"라고 답하세요.
3. 답변에는 근거가 된 조항(예: 제3장 제12조)을 함께 명시하세요.
4. 답변은 한국어로 간결하고 정확하게 작성하세요.`

const userPromptTemplate = `다음 문서 내용을 참고하여 질문에 답변해주세요.

[문서 내용]
%s

[질문]
%s

[답변]`

// noAnswerMessage is returned verbatim when retrieval produces no
// candidates at all.
const noAnswerMessage = "관련 문서를 찾을 수 없습니다. 다른 질문을 시도해보세요."

func generationFailedMessage(err error) string {
	return fmt.Sprintf("답변 생성 중 오류가 발생했습니다: %v", err)
}

// buildContext renders the evidence block of the user prompt. Each chunk is
// introduced by its document name so the model can cite where an answer
// came from.
func buildContext(sources []Source, texts []string) string {
	var b strings.Builder
	for i, src := range sources {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[문서 %d: %s]", src.Index, src.DocName)
		if src.HierarchyPath != "" {
			fmt.Fprintf(&b, " (%s)", src.HierarchyPath)
		}
		b.WriteString("\n")
		b.WriteString(texts[i])
	}
	return b.String()
}
