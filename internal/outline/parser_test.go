package outline

import (
	"strings"
	"testing"
)

const sampleRegulation = `제1장 총칙

제1조 (목적) 이 규정은 회사의 인사관리에 관한 기본 사항을 정함을 목적으로 한다.

제2조 (적용범위)
① 이 규정은 회사의 모든 임직원에게 적용한다.
② 별도의 규정이 있는 경우에는 그 규정을 우선 적용한다.

제2장 채용

제3조 (채용원칙) 회사는 공개경쟁 채용을 원칙으로 한다.
가. 서류전형
나. 면접전형
`

func TestParse_RecognizesChaptersAndArticles(t *testing.T) {
	sections := Parse(sampleRegulation)

	st := Summarize(sections)
	if st.TotalChapters != 2 {
		t.Errorf("expected 2 chapters, got %d", st.TotalChapters)
	}
	if st.TotalArticles != 3 {
		t.Errorf("expected 3 articles, got %d", st.TotalArticles)
	}

	articles := Articles(sections)
	if len(articles) != 3 {
		t.Fatalf("expected 3 article sections, got %d", len(articles))
	}

	first := articles[0]
	if first.Number != "1" {
		t.Errorf("first article number = %q, want \"1\"", first.Number)
	}
	if first.Title != "목적" {
		t.Errorf("first article title = %q, want \"목적\"", first.Title)
	}
	if first.ChapterNumber != "1" || first.ChapterTitle != "총칙" {
		t.Errorf("first article chapter = %q %q, want \"1\" \"총칙\"", first.ChapterNumber, first.ChapterTitle)
	}

	third := articles[2]
	if third.ChapterNumber != "2" || third.ChapterTitle != "채용" {
		t.Errorf("third article chapter = %q %q, want \"2\" \"채용\"", third.ChapterNumber, third.ChapterTitle)
	}
}

func TestParse_ArticleSpansRunToNextMarker(t *testing.T) {
	sections := Parse(sampleRegulation)
	articles := Articles(sections)

	// Article 1 ends where article 2 starts.
	if articles[0].End != articles[1].Start {
		t.Errorf("article 1 end = %d, want %d", articles[0].End, articles[1].Start)
	}

	// Article 2 ends where chapter 2 starts, so its text must not leak into
	// the following chapter.
	if strings.Contains(articles[1].Text, "제2장") {
		t.Errorf("article 2 text leaked into next chapter: %q", articles[1].Text)
	}
	if !strings.Contains(articles[1].Text, "② 별도의 규정이") {
		t.Errorf("article 2 text missing its second paragraph: %q", articles[1].Text)
	}

	// The last article runs to the end of the document.
	if articles[2].End != len(sampleRegulation) {
		t.Errorf("last article end = %d, want %d", articles[2].End, len(sampleRegulation))
	}

	// Offsets index back into the source text.
	for _, a := range articles {
		span := strings.TrimSpace(sampleRegulation[a.Start:a.End])
		if span != a.Text {
			t.Errorf("article %s text does not match its span", a.Number)
		}
	}
}

func TestParse_SpacedMarkers(t *testing.T) {
	sections := Parse("제 3 장 복무\n제 12 조 (근무시간) 근무시간은 주 40시간으로 한다.\n")
	articles := Articles(sections)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Number != "12" {
		t.Errorf("article number = %q, want \"12\"", articles[0].Number)
	}
	if articles[0].ChapterNumber != "3" {
		t.Errorf("chapter number = %q, want \"3\"", articles[0].ChapterNumber)
	}
}

func TestParse_ArticleWithoutTitle(t *testing.T) {
	sections := Parse("제5조 수당은 매월 지급한다.\n")
	articles := Articles(sections)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Title != "" {
		t.Errorf("title = %q, want empty", articles[0].Title)
	}
}

func TestParse_UnstructuredTextYieldsNothing(t *testing.T) {
	sections := Parse("이 문서는 장이나 조 없이 작성된 일반 안내문입니다.\n여러 줄로 이어집니다.\n")
	if len(sections) != 0 {
		t.Errorf("expected no sections, got %d", len(sections))
	}
}

func TestParse_EmptyInput(t *testing.T) {
	if got := Parse(""); len(got) != 0 {
		t.Errorf("expected no sections for empty input, got %d", len(got))
	}
}

func TestParse_Deterministic(t *testing.T) {
	a := Parse(sampleRegulation)
	b := Parse(sampleRegulation)
	if len(a) != len(b) {
		t.Fatalf("section counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("section %d differs between runs", i)
		}
	}
}

func TestIsParagraphStart(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"① 이 규정은 모든 임직원에게 적용한다.", true},
		{"⑩ 열 번째 항", true},
		{"3) 숫자 괄호 형식", true},
		{"가. 서류전형", false},
		{"일반 본문 줄", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsParagraphStart(c.line); got != c.want {
			t.Errorf("IsParagraphStart(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestNormalizeParagraphMarker(t *testing.T) {
	if got := NormalizeParagraphMarker("③"); got != "3" {
		t.Errorf("NormalizeParagraphMarker(③) = %q, want \"3\"", got)
	}
	if got := NormalizeParagraphMarker("7)"); got != "7" {
		t.Errorf("NormalizeParagraphMarker(7)) = %q, want \"7\"", got)
	}
}
