package lessonindex

import (
	"context"
	"fmt"
	"log"

	"studyplan/models"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"google.golang.org/protobuf/types/known/structpb"
)

const indexNamespace = "studyplan-lessons"

// Theory is cut to this length for embedding input and the stored
// snippet.
const maxSnippetChars = 2000

// Service maintains a semantic index of lesson theory so users can
// search across all their plans by meaning rather than keywords.
type Service struct {
	client    *pinecone.Client
	embedder  embeddings.Embedder
	indexName string
}

func NewService(apiKey, openaiAPIKey, indexName string) (*Service, error) {
	log.Printf("[INFO] Initializing lesson index service")

	pc, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Pinecone client: %w", err)
	}

	llm, err := openai.New(
		openai.WithModel("gpt-4o-mini"),
		openai.WithToken(openaiAPIKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	service := &Service{
		client:    pc,
		embedder:  embedder,
		indexName: indexName,
	}

	log.Printf("[INFO] Lesson index service initialized successfully")
	return service, nil
}

// IndexLessons embeds and upserts the lessons of a freshly generated
// plan. Lessons are keyed by id, so re-indexing overwrites in place.
func (s *Service) IndexLessons(userID int64, planID int, lessons []*models.Lesson) error {
	log.Printf("[INFO] Indexing %d lessons of plan %d", len(lessons), planID)

	ctx := context.Background()

	idxConn, err := s.indexConnection(ctx)
	if err != nil {
		return err
	}

	vectors := make([]*pinecone.Vector, 0, len(lessons))
	for _, lesson := range lessons {
		snippet := lesson.TheoryMD
		if len(snippet) > maxSnippetChars {
			snippet = snippet[:maxSnippetChars]
		}

		combinedText := fmt.Sprintf("Title: %s\n\nTheory: %s", lesson.Title, snippet)
		lessonEmbeddings, err := s.embedder.EmbedDocuments(ctx, []string{combinedText})
		if err != nil {
			return fmt.Errorf("failed to generate embedding for lesson %d: %w", lesson.ID, err)
		}

		metadata := map[string]any{
			"user_id":    userID,
			"plan_id":    planID,
			"lesson_id":  lesson.ID,
			"title":      lesson.Title,
			"day_number": lesson.DayNumber,
			"snippet":    snippet,
		}

		metadataStruct, err := structpb.NewStruct(metadata)
		if err != nil {
			return fmt.Errorf("failed to create metadata struct for lesson %d: %w", lesson.ID, err)
		}

		vectors = append(vectors, &pinecone.Vector{
			Id:       fmt.Sprintf("lesson_%d", lesson.ID),
			Values:   &lessonEmbeddings[0],
			Metadata: metadataStruct,
		})
	}

	if _, err := idxConn.UpsertVectors(ctx, vectors); err != nil {
		return fmt.Errorf("failed to upsert lesson vectors: %w", err)
	}

	log.Printf("[INFO] Indexed %d lessons of plan %d", len(vectors), planID)
	return nil
}

// Search returns the user's lessons most similar to the query. Results
// are filtered to the user's own vectors at the index side.
func (s *Service) Search(userID int64, query string, limit int) ([]models.LessonSearchResult, error) {
	log.Printf("[INFO] Searching lessons of user %d for %q", userID, query)

	ctx := context.Background()

	idxConn, err := s.indexConnection(ctx)
	if err != nil {
		return nil, err
	}

	queryEmbeddings, err := s.embedder.EmbedDocuments(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	filter, err := structpb.NewStruct(map[string]any{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata filter: %w", err)
	}

	result, err := idxConn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          queryEmbeddings[0],
		TopK:            uint32(limit),
		MetadataFilter:  filter,
		IncludeValues:   false,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson vectors: %w", err)
	}

	results := make([]models.LessonSearchResult, 0, len(result.Matches))
	for _, match := range result.Matches {
		if match.Vector.Metadata == nil {
			continue
		}
		metadata := match.Vector.Metadata.AsMap()

		item := models.LessonSearchResult{
			Score: float64(match.Score),
		}
		if lessonID, ok := metadata["lesson_id"].(float64); ok {
			item.LessonID = int(lessonID)
		}
		if planID, ok := metadata["plan_id"].(float64); ok {
			item.PlanID = int(planID)
		}
		if dayNumber, ok := metadata["day_number"].(float64); ok {
			item.DayNumber = int(dayNumber)
		}
		if title, ok := metadata["title"].(string); ok {
			item.Title = title
		}
		if snippet, ok := metadata["snippet"].(string); ok {
			item.Snippet = snippet
		}
		results = append(results, item)
	}

	log.Printf("[INFO] Found %d matching lessons", len(results))
	return results, nil
}

func (s *Service) indexConnection(ctx context.Context) (*pinecone.IndexConnection, error) {
	idxDesc, err := s.client.DescribeIndex(ctx, s.indexName)
	if err != nil {
		return nil, fmt.Errorf("failed to describe index: %w", err)
	}

	idxConn, err := s.client.Index(pinecone.NewIndexConnParams{
		Host:      idxDesc.Host,
		Namespace: indexNamespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create index connection: %w", err)
	}

	return idxConn, nil
}
