package chat

// DefaultInventory returns the built-in conversation script. Node order
// matters: it is the free-text routing order.
func DefaultInventory() *Inventory {
	inv, err := NewInventory(defaultNodes())
	if err != nil {
		// The built-in script is validated by tests; a failure here is a
		// build defect, not a runtime condition.
		panic(err)
	}
	return inv
}

func defaultNodes() []Node {
	return []Node{
		{
			ID:       NodeWelcome,
			Triggers: []string{"start", "hi", "hello", "menu"},
			Response: Response{
				Text:    "👋 **Welcome to twin3!**\n\nI'm your AI assistant, here to help you discover your influence value and connect with brand opportunities.\n\nLet me show you what twin3 can do for you:",
				DelayMS: 800,
				Widget:  WidgetFeatureGrid,
			},
			SuggestedActions: []SuggestedAction{
				{Label: "Get Started", Payload: "verify_human"},
				{Label: "How It Works", Payload: "how_it_works"},
				{Label: "View Sample Tasks", Payload: NodeBrowseTasks},
			},
		},
		{
			ID:       "how_it_works",
			Triggers: []string{"how", "how it works", "explain", "what is"},
			Response: Response{
				Text:    "**How twin3 Works**\n\n**1. Connect** — Link your social accounts to verify your identity\n\n**2. Analyze** — AI generates your Twin Matrix Score (0-255) based on your content and engagement\n\n**3. Match** — Get matched with brand tasks tailored to your style and influence level\n\n**4. Earn** — Complete tasks to earn tokens and build your digital reputation\n\nReady to discover your value?",
				DelayMS: 600,
			},
			SuggestedActions: []SuggestedAction{
				{Label: "Get Started", Payload: "verify_human"},
				{Label: "View Sample Tasks", Payload: NodeBrowseTasks},
			},
		},
		{
			ID:       "twin_matrix",
			Triggers: []string{"matrix", "twin matrix", "256d", "profile"},
			Response: Response{
				Text:    "✨ **Your Twin Matrix**\n\nThis is your unique digital fingerprint — a 256-dimensional representation of your authentic self.\n\n**What it measures:**\n• Content style & creativity\n• Audience engagement\n• Authenticity score\n• Influence reach\n• Brand alignment\n• Community trust\n\nYour Twin Matrix unlocks personalized brand matches:",
				DelayMS: 600,
				Widget:  WidgetTwinMatrix,
			},
			SuggestedActions: []SuggestedAction{
				{Label: "Browse Tasks", Payload: NodeBrowseTasks},
				{Label: "View Dashboard", Payload: "dashboard"},
			},
		},
		{
			ID:       "verify_human",
			Triggers: []string{"verify", "verification", "prove", "human"},
			Response: Response{
				Text:    "Great! Let's get you verified.\n\n**Why Verify?**\n✓ Unlock personalized brand tasks\n✓ Discover your influence value\n✓ Access premium rewards\n\nConnect your Instagram below to get started:",
				DelayMS: 500,
				Widget:  WidgetInstagramConnect,
			},
		},
		{
			ID: NodeVerificationRequired,
			Response: Response{
				Text:    "Hold on! 🔒\n\nTo access brand tasks, you'll need to verify your account first.\n\n**Quick Verification** takes less than 30 seconds:\n✓ Connect Instagram\n✓ Get your Twin Matrix Score\n✓ Unlock all tasks\n\nLet's get you verified:",
				DelayMS: 600,
				Widget:  WidgetInstagramConnect,
			},
		},
		{
			ID:       NodeVerificationSuccess,
			Triggers: []string{"verified", "success"},
			Response: Response{
				Text:    "🎉 **Welcome to twin3!**\n\nYour Instagram has been successfully verified!\n\nNow let me show you your unique Twin Matrix Score — a 256-dimensional identity that represents your authentic digital self.",
				DelayMS: 500,
				Widget:  WidgetTwinMatrix,
			},
			SuggestedActions: []SuggestedAction{
				{Label: "Browse Tasks", Payload: NodeBrowseTasks},
				{Label: "View Dashboard", Payload: "dashboard"},
			},
		},
		{
			ID:       NodeBrowseTasks,
			Triggers: []string{"task", "browse", "jobs"},
			Response: Response{
				Text:    "🎯 **Brand Tasks For You**\n\nBased on your profile, here are personalized brand collaboration opportunities.\n\nEach task is matched to your influence style and audience. Click any card to see full details:",
				DelayMS: 500,
				Cards: []CardData{
					{
						Type: CardTaskOpportunity,
						Task: &TaskPayload{
							Brand:       Brand{Name: "L'Oreal Paris", LogoURL: "https://placehold.co/40x40/FF0000/FFF?text=L"},
							Title:       "Lipstick Filter Challenge",
							Description: "Create 15-60s Reels using specific filter showcasing #666 shade. Mention moisturizing and color payoff.",
							ImageURL:    "https://placehold.co/600x300/e6a6be/FFF?text=Lipstick+Campaign",
							Reward:      Reward{Tokens: "500 $twin3", Gift: "Full PR Package (Worth $3000)"},
							Status:      "open",
							SpotsLeft:   3,
						},
						Actions: []CardAction{
							{Label: "View Details", ActionID: "view_task_detail", Variant: "primary"},
							{Label: "Decline", ActionID: "decline_task", Variant: "secondary"},
						},
					},
				},
			},
			SuggestedActions: []SuggestedAction{
				{Label: "View Twin Matrix", Payload: "twin_matrix"},
				{Label: "Complete Verification", Payload: "verify_human"},
				{Label: "Browse Tasks", Payload: NodeBrowseTasks},
			},
		},
		{
			ID:       "view_task_detail",
			Triggers: []string{"detail", "details", "view"},
			Response: Response{
				Text:    "📋 **Task Details**\n\nHere's everything you need to know about this collaboration.\n\nReview the requirements carefully before accepting:",
				DelayMS: 500,
				Cards: []CardData{
					{
						Type:        CardTaskDetail,
						Title:       "L'Oreal Paris — Lipstick Filter Challenge",
						Description: "**Requirements**\n• Create 15-60s Reels or TikTok\n• Use designated filter\n• Showcase shade #666 Rouge Signature\n\n**Rewards**\n• 500 $twin3\n• Full PR Package (Worth $3000)\n\n**Deadline**: 2025/01/15",
						ImageURL:    "https://placehold.co/600x400/e6a6be/FFF?text=Product+Detail",
						Actions: []CardAction{
							{Label: "Accept Task", ActionID: "accept_task", Variant: "primary"},
							{Label: "Decline", ActionID: "decline_task", Variant: "secondary"},
						},
					},
				},
			},
			SuggestedActions: []SuggestedAction{
				{Label: "View Twin Matrix", Payload: "twin_matrix"},
				{Label: "Complete Verification", Payload: "verify_human"},
				{Label: "Browse Tasks", Payload: NodeBrowseTasks},
			},
		},
		{
			ID:       "accept_task",
			Triggers: []string{"accept", "confirm"},
			Response: Response{
				Text:    "🎉 **Task Accepted!**\n\nAwesome! You're all set to start working on this collaboration.\n\n**Next Steps:**\n1. Review the task requirements\n2. Create your content\n3. Submit for review\n\nTrack your progress below:",
				DelayMS: 800,
				Widget:  WidgetActiveTask,
			},
			SuggestedActions: []SuggestedAction{
				{Label: "View More Tasks", Payload: NodeBrowseTasks},
			},
		},
		{
			ID:       "decline_task",
			Triggers: []string{"decline", "skip", "no"},
			Response: Response{
				Text:    "No worries! 👍\n\nThis task isn't the right fit — that's totally fine.\n\nWe have many other brand collaborations available. Want to explore more options?",
				DelayMS: 500,
			},
			SuggestedActions: []SuggestedAction{
				{Label: "View Other Tasks", Payload: NodeBrowseTasks},
				{Label: "View Dashboard", Payload: "dashboard"},
			},
		},
		{
			ID:       "dashboard",
			Triggers: []string{"dashboard", "my tasks", "status"},
			Response: Response{
				Text:    "📊 **Your Dashboard**\n\nHere's an overview of all your active tasks, completed work, and earnings.\n\nClick on any task to view details or submit your work:",
				DelayMS: 500,
				Widget:  WidgetGlobalDashboard,
			},
			SuggestedActions: []SuggestedAction{
				{Label: "Browse More Tasks", Payload: NodeBrowseTasks},
				{Label: "View Twin Matrix", Payload: "twin_matrix"},
			},
		},
		{
			ID:       "proof_of_humanity",
			Triggers: []string{"proof of humanity", "humanity"},
			Response: Response{
				Text:    "🔐 **Proof of Humanity**\n\nThis foundational task establishes your authentic human identity in the twin3 ecosystem.\n\n**Why it matters:**\n• Unlocks premium brand collaborations\n• Boosts your Twin Matrix Score\n• Builds trust with brands\n\n**Requirements:**\n1. ✓ Connect Instagram account\n2. Connect LinkedIn (optional, +bonus)\n3. Complete WorldCoin verification (optional)\n\n**Reward:** 100 $twin3\n\nReady to get verified?",
				DelayMS: 500,
			},
			SuggestedActions: []SuggestedAction{
				{Label: "Start Verification", Payload: "verify_human"},
				{Label: "Back to Dashboard", Payload: "dashboard"},
			},
		},
		{
			ID:       "share_on_x",
			Triggers: []string{"share on x", "twitter", "share matrix"},
			Response: Response{
				Text:    "🐦 **Share Your Twin Matrix on X**\n\nSpread the word about your unique digital identity and earn rewards!\n\n**What to do:**\n1. Generate your Twin Matrix (if you haven't)\n2. Post the visualization on X\n3. Include hashtag #twin3\n4. Submit your post URL\n\n**Reward:** 200 $twin3\n⏰ **Deadline:** 24 hours remaining\n\nReady to share?",
				DelayMS: 500,
			},
			SuggestedActions: []SuggestedAction{
				{Label: "View Twin Matrix", Payload: "twin_matrix"},
				{Label: "Back to Dashboard", Payload: "dashboard"},
			},
		},
		{
			ID: NodeFallback,
			Response: Response{
				Text:    "Hmm, I'm not sure I understand that yet. 🤔\n\nI can help you with:\n• Viewing brand tasks\n• Checking your dashboard\n• Understanding your Twin Matrix\n• Verifying your account\n\nWhat would you like to do?",
				DelayMS: 300,
			},
			SuggestedActions: []SuggestedAction{
				{Label: "View Tasks", Payload: NodeBrowseTasks},
				{Label: "Dashboard", Payload: "dashboard"},
				{Label: "Twin Matrix", Payload: "twin_matrix"},
			},
		},
	}
}
