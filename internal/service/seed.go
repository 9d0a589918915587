package service

import (
	"time"

	"Connect_Hub/internal/model"
)

// 首次运行的预置数据，键已存在时不再写入

func seedCommunities() []model.Community {
	now := time.Now()
	return []model.Community{
		{
			ID:          "community_placements",
			Name:        "Placements",
			Description: "Discussions about campus placements, interviews, and job opportunities",
			CreatedBy:   "admin",
			CreatedAt:   now,
			MemberCount: 120,
		},
		{
			ID:          "community_academics",
			Name:        "Academics",
			Description: "Course discussions, study material, and academic guidance",
			CreatedBy:   "admin",
			CreatedAt:   now,
			MemberCount: 150,
		},
		{
			ID:          "community_events",
			Name:        "Events",
			Description: "College events, workshops, seminars, and extracurricular activities",
			CreatedBy:   "admin",
			CreatedAt:   now,
			MemberCount: 85,
		},
		{
			ID:          "community_general",
			Name:        "General",
			Description: "General discussions about campus life and other topics",
			CreatedBy:   "admin",
			CreatedAt:   now,
			MemberCount: 200,
		},
		{
			ID:          "community_announcements",
			Name:        "Announcements",
			Description: "Important announcements from college administration",
			CreatedBy:   "admin",
			CreatedAt:   now,
			MemberCount: 250,
		},
	}
}

func seedPosts() []model.Post {
	now := time.Now()
	admin := "Admin"
	coordinator := "placement_coordinator"
	return []model.Post{
		{
			ID:        "post1",
			Title:     "Welcome to IGDTUW Connect Hub!",
			Content:   "This is a community platform for IGDTUW students to connect, share information, and help each other.",
			Tags:      []string{"announcements"},
			Timestamp: now,
			Upvotes:   15,
			UserID:    "admin",
			UserName:  &admin,
		},
		{
			ID:        "post2",
			Title:     "Upcoming Placement Drive",
			Content:   "Google is visiting campus next week. Prepare your resumes and algorithms!",
			Tags:      []string{"placements"},
			Timestamp: now.Add(-24 * time.Hour),
			Upvotes:   25,
			UserID:    "user123",
			UserName:  &coordinator,
		},
		{
			ID:          "post3",
			Title:       "How difficult is the Data Structures course?",
			Content:     "I'm finding the assignments challenging. Any tips from seniors?",
			Tags:        []string{"academics"},
			Timestamp:   now.Add(-48 * time.Hour),
			Upvotes:     5,
			UserID:      "anonymous",
			UserName:    nil,
			IsAnonymous: true,
		},
	}
}
