package service

import (
	"context"
	"fmt"
	"testing"

	"cardbot/internal/domain"
	"cardbot/internal/session"
	"cardbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func noShuffle(int, func(i, j int)) {}

func newTestQuiz(repo *testutil.MockWordRepository) (*QuizService, *session.Store) {
	logger := testutil.NewTestLogger()
	sessions := session.NewStore()
	quiz := NewQuizService(NewWordService(repo, logger), sessions, logger)
	quiz.shuffle = noShuffle
	return quiz, sessions
}

func sampleWords() []domain.Word {
	return []domain.Word{
		testutil.NewTestWord(1, "cat", "кот"),
		testutil.NewTestWord(2, "dog", "собака"),
		testutil.NewTestUserWord(3, 123, "owl", "сова"),
		testutil.NewTestWord(4, "fox", "лиса"),
	}
}

func TestQuizService_NextCard(t *testing.T) {
	mockRepo := new(testutil.MockWordRepository)
	mockRepo.On("SampleWords", mock.Anything, int64(123), 4).Return(sampleWords(), nil)

	quiz, sessions := newTestQuiz(mockRepo)

	card, err := quiz.NextCard(context.Background(), 123)

	require.NoError(t, err)
	assert.Equal(t, "cat", card.Target.English)
	assert.Len(t, card.Distractors, 3)
	assert.Equal(t, []string{"cat", "dog", "owl", "fox"}, card.Options)

	sess := sessions.Get(123)
	assert.Equal(t, domain.ModeAwaitingAnswer, sess.Mode)
	assert.Equal(t, "cat", sess.Target)
	assert.Equal(t, "кот", sess.Translation)
	assert.Equal(t, []string{"dog", "owl", "fox"}, sess.Distractors)
	mockRepo.AssertExpectations(t)
}

func TestQuizService_NextCard_ShufflesOptions(t *testing.T) {
	mockRepo := new(testutil.MockWordRepository)
	mockRepo.On("SampleWords", mock.Anything, int64(123), 4).Return(sampleWords(), nil)

	quiz, _ := newTestQuiz(mockRepo)
	var shuffled int
	quiz.shuffle = func(n int, swap func(i, j int)) {
		shuffled = n
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}

	card, err := quiz.NextCard(context.Background(), 123)

	require.NoError(t, err)
	assert.Equal(t, 4, shuffled)
	assert.Equal(t, []string{"fox", "owl", "dog", "cat"}, card.Options)
	assert.Equal(t, "cat", card.Target.English)
}

func TestQuizService_NextCard_OptionProperties(t *testing.T) {
	all := sampleWords()

	for n := 1; n <= len(all); n++ {
		t.Run(fmt.Sprintf("%d words", n), func(t *testing.T) {
			mockRepo := new(testutil.MockWordRepository)
			mockRepo.On("SampleWords", mock.Anything, int64(123), 4).Return(all[:n], nil)

			logger := testutil.NewTestLogger()
			sessions := session.NewStore()
			quiz := NewQuizService(NewWordService(mockRepo, logger), sessions, logger)

			for round := 0; round < 20; round++ {
				card, err := quiz.NextCard(context.Background(), 123)
				require.NoError(t, err)

				assert.Len(t, card.Options, n)
				assert.Contains(t, card.Options, card.Target.English)

				seen := make(map[string]bool)
				for _, opt := range card.Options {
					assert.False(t, seen[opt], "duplicate option %q", opt)
					seen[opt] = true
				}

				sess := sessions.Get(123)
				assert.NotEmpty(t, sess.Target)
				assert.NotContains(t, sess.Distractors, sess.Target)
			}
		})
	}
}

func TestQuizService_NextCard_SkipsRepeatedText(t *testing.T) {
	words := []domain.Word{
		testutil.NewTestWord(1, "cat", "кот"),
		testutil.NewTestUserWord(9, 123, "Cat", "кошка"),
		testutil.NewTestWord(2, "dog", "собака"),
	}

	mockRepo := new(testutil.MockWordRepository)
	mockRepo.On("SampleWords", mock.Anything, int64(123), 4).Return(words, nil)

	quiz, sessions := newTestQuiz(mockRepo)

	card, err := quiz.NextCard(context.Background(), 123)

	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, card.Options)
	assert.Equal(t, []string{"dog"}, sessions.Get(123).Distractors)
}

func TestQuizService_NextCard_NoWords(t *testing.T) {
	mockRepo := new(testutil.MockWordRepository)
	mockRepo.On("SampleWords", mock.Anything, int64(123), 4).Return([]domain.Word{}, nil)

	quiz, sessions := newTestQuiz(mockRepo)
	sessions.Set(123, domain.Session{Mode: domain.ModeAwaitingAnswer, Target: "cat"})

	card, err := quiz.NextCard(context.Background(), 123)

	assert.ErrorIs(t, err, domain.ErrNoWordsAvailable)
	assert.Nil(t, card)
	assert.Equal(t, domain.ModeIdle, sessions.Get(123).Mode)
}

func TestQuizService_NextCard_StoreError(t *testing.T) {
	mockRepo := new(testutil.MockWordRepository)
	mockRepo.On("SampleWords", mock.Anything, int64(123), 4).Return(nil, fmt.Errorf("db error"))

	quiz, sessions := newTestQuiz(mockRepo)
	sessions.Set(123, domain.Session{Mode: domain.ModeAwaitingAnswer, Target: "cat"})

	card, err := quiz.NextCard(context.Background(), 123)

	assert.Error(t, err)
	assert.Nil(t, card)
	assert.Equal(t, "cat", sessions.Get(123).Target)
}

func TestQuizService_Evaluate(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		expected bool
	}{
		{name: "exact answer", answer: "cat", expected: true},
		{name: "different case", answer: "CaT", expected: true},
		{name: "surrounding whitespace", answer: "  cat ", expected: true},
		{name: "distractor", answer: "dog", expected: false},
		{name: "unknown text", answer: "кот", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockWordRepository)
			mockRepo.On("SampleWords", mock.Anything, int64(123), 4).Return(sampleWords(), nil)

			quiz, sessions := newTestQuiz(mockRepo)
			_, err := quiz.NextCard(context.Background(), 123)
			require.NoError(t, err)

			result, err := quiz.Evaluate(context.Background(), 123, tt.answer)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Correct)
			assert.Equal(t, "cat", result.Target)
			assert.Equal(t, "кот", result.Translation)
			require.NotNil(t, result.Next)
			assert.Equal(t, domain.ModeAwaitingAnswer, sessions.Get(123).Mode)
			mockRepo.AssertNumberOfCalls(t, "SampleWords", 2)
		})
	}
}

func TestQuizService_Evaluate_NoActiveCard(t *testing.T) {
	mockRepo := new(testutil.MockWordRepository)
	quiz, sessions := newTestQuiz(mockRepo)

	_, err := quiz.Evaluate(context.Background(), 123, "cat")
	assert.ErrorIs(t, err, domain.ErrNoActiveCard)

	sessions.Set(123, domain.Session{Mode: domain.ModeAwaitingNewWord})
	_, err = quiz.Evaluate(context.Background(), 123, "cat")
	assert.ErrorIs(t, err, domain.ErrNoActiveCard)

	mockRepo.AssertNotCalled(t, "SampleWords", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuizService_Evaluate_WordsRunOut(t *testing.T) {
	mockRepo := new(testutil.MockWordRepository)
	mockRepo.On("SampleWords", mock.Anything, int64(123), 4).Return(sampleWords()[:1], nil).Once()
	mockRepo.On("SampleWords", mock.Anything, int64(123), 4).Return([]domain.Word{}, nil).Once()

	quiz, sessions := newTestQuiz(mockRepo)
	_, err := quiz.NextCard(context.Background(), 123)
	require.NoError(t, err)

	result, err := quiz.Evaluate(context.Background(), 123, "cat")

	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Nil(t, result.Next)
	assert.Equal(t, domain.ModeIdle, sessions.Get(123).Mode)
	mockRepo.AssertExpectations(t)
}

func TestQuizService_Evaluate_StoreErrorOnNextCard(t *testing.T) {
	mockRepo := new(testutil.MockWordRepository)
	mockRepo.On("SampleWords", mock.Anything, int64(123), 4).Return(sampleWords(), nil).Once()
	mockRepo.On("SampleWords", mock.Anything, int64(123), 4).Return(nil, fmt.Errorf("db error")).Once()

	quiz, _ := newTestQuiz(mockRepo)
	_, err := quiz.NextCard(context.Background(), 123)
	require.NoError(t, err)

	result, err := quiz.Evaluate(context.Background(), 123, "cat")

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestQuizService_CurrentCard(t *testing.T) {
	mockRepo := new(testutil.MockWordRepository)
	mockRepo.On("SampleWords", mock.Anything, int64(123), 4).Return(sampleWords(), nil).Once()

	quiz, sessions := newTestQuiz(mockRepo)

	_, err := quiz.CurrentCard(123)
	assert.ErrorIs(t, err, domain.ErrNoActiveCard)

	_, err = quiz.NextCard(context.Background(), 123)
	require.NoError(t, err)

	card, err := quiz.CurrentCard(123)

	require.NoError(t, err)
	assert.Equal(t, "cat", card.Target.English)
	assert.Equal(t, "кот", card.Target.Russian)
	assert.Equal(t, []string{"cat", "dog", "owl", "fox"}, card.Options)
	assert.Len(t, card.Distractors, 3)
	assert.Equal(t, domain.ModeAwaitingAnswer, sessions.Get(123).Mode)
	mockRepo.AssertNumberOfCalls(t, "SampleWords", 1)
}
